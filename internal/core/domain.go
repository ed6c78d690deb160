package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income      Kind = "income"
	Expense     Kind = "expense"
	Savings     Kind = "savings"
	DebtPayment Kind = "debt"
)

const (
	Checking       AccountType = "checking"
	SavingsAccount AccountType = "savings"
	Cash           AccountType = "cash"
	Credit         AccountType = "credit"
	Investment     AccountType = "investment"
)

const (
	BillAlert   NotificationKind = "bill"
	BudgetAlert NotificationKind = "budget"
	GoalAlert   NotificationKind = "goal"
)

// FallbackCategory substitutes a missing category label on malformed records.
const FallbackCategory = "Other"

type (
	// Kind classifies a transaction's financial effect.
	Kind string

	AccountType string

	NotificationKind string

	Money struct {
		Cents int64
	}

	// Transaction is immutable once recorded. Amount is always stored as its
	// absolute value; Kind alone determines the effect.
	Transaction struct {
		ID          string    `json:"id,omitempty"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description,omitempty"`
		Category    string    `json:"category"`
		Kind        Kind      `json:"kind"`
		AccountID   string    `json:"account_id,omitempty"`
		Date        time.Time `json:"date"`
		Recurring   bool      `json:"recurring"`
	}

	// Account balance is a static starting balance; transactions are not
	// posted against it.
	Account struct {
		ID              string      `json:"id,omitempty"`
		Name            string      `json:"name"`
		Type            AccountType `json:"type"`
		StartingBalance Money       `json:"starting_balance"`
		Icon            string      `json:"icon,omitempty"`
	}

	Goal struct {
		ID            string `json:"id,omitempty"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"target_amount"`
		CurrentAmount Money  `json:"current_amount"`
	}

	Debt struct {
		ID             string  `json:"id,omitempty"`
		Name           string  `json:"name"`
		Balance        Money   `json:"balance"`
		InterestRate   float64 `json:"interest_rate"`
		MinimumPayment Money   `json:"minimum_payment"`
	}

	// BudgetCategory joins against Transaction.Category by name; there is no
	// foreign-key enforcement.
	BudgetCategory struct {
		ID            string `json:"id,omitempty"`
		Name          string `json:"name"`
		MonthlyBudget Money  `json:"monthly_budget"`
	}

	Notification struct {
		ID      string           `json:"id,omitempty"`
		Kind    NotificationKind `json:"kind"`
		Message string           `json:"message"`
		Date    time.Time        `json:"date"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidType     = errors.New("invalid account type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyName       = errors.New("empty name")
	ErrNegativeBalance = errors.New("negative balance")
)

func (k Kind) IsValid() bool {
	switch k {
	case Income, Expense, Savings, DebtPayment:
		return true
	default:
		return false
	}
}

func (at AccountType) IsValid() bool {
	switch at {
	case Checking, SavingsAccount, Cash, Credit, Investment:
		return true
	default:
		return false
	}
}

// Liquid reports whether the account counts toward cash on hand. Credit and
// investment balances are excluded; credit debt is tracked via Debt records.
func (at AccountType) Liquid() bool {
	switch at {
	case Checking, SavingsAccount, Cash:
		return true
	default:
		return false
	}
}

func (nk NotificationKind) IsValid() bool {
	switch nk {
	case BillAlert, BudgetAlert, GoalAlert:
		return true
	default:
		return false
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Abs returns the absolute monetary value.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if t.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	// Over-funding is allowed; only negative progress is rejected.
	if g.CurrentAmount.Cents < 0 {
		return ErrNegativeBalance
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Balance.Cents < 0 {
		return ErrNegativeBalance
	}
	if d.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	if d.MinimumPayment.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b BudgetCategory) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.MonthlyBudget.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (n Notification) Validate() error {
	if !n.Kind.IsValid() {
		return errors.New("invalid notification kind")
	}
	if strings.TrimSpace(n.Message) == "" {
		return errors.New("empty message")
	}
	return nil
}
