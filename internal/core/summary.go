package core

// Metrics holds the scalar figures of a summary window.
type Metrics struct {
	NetWorth     Money `json:"net_worth"`
	CashOnHand   Money `json:"cash_on_hand"`
	TotalDebt    Money `json:"total_debt"`
	CashFlow     Money `json:"cash_flow"`
	Income       Money `json:"income"`
	Expenses     Money `json:"expenses"`
	Savings      Money `json:"savings"`
	DebtPayments Money `json:"debt_payments"`
}

// BudgetUsage compares month-to-date spend against a category's monthly budget.
// Spent is zero when no transactions matched the category name.
type BudgetUsage struct {
	Name   string `json:"name"`
	Spent  Money  `json:"spent"`
	Budget Money  `json:"budget"`
}

// SummaryReport bundles the aggregates for one timeframe together with the
// goal/debt/account snapshots, so consumers render everything from one call.
type SummaryReport struct {
	Timeframe         Timeframe        `json:"timeframe"`
	Metrics           Metrics          `json:"metrics"`
	IncomeSources     map[string]Money `json:"income_sources"`
	ExpenseCategories map[string]Money `json:"expense_categories"`
	BudgetUsage       []BudgetUsage    `json:"budget_usage"`
	Goals             []Goal           `json:"goals"`
	Debts             []Debt           `json:"debts"`
	Accounts          []Account        `json:"accounts"`
}
