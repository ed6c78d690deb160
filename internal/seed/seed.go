// Package seed populates empty collections with demo data so a fresh install
// renders a non-empty dashboard. It runs once at process startup; read paths
// never trigger writes.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

type Seeder struct {
	records store.Store
	clock   func() time.Time
}

func New(records store.Store) *Seeder {
	return &Seeder{
		records: records,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Run seeds each empty collection. The emptiness guard makes it effectively
// idempotent; a race between two concurrent first-time initializations could
// double-seed and is tolerated.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	if err := s.seedGoals(ctx); err != nil {
		return err
	}
	if err := s.seedDebts(ctx); err != nil {
		return err
	}
	if err := s.seedBudgets(ctx); err != nil {
		return err
	}
	if err := s.seedTransactions(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	n, err := s.records.CountAccounts(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if n > 0 {
		return nil
	}
	accounts := []core.Account{
		{Name: "Checking", Type: core.Checking, StartingBalance: core.Money{Cents: 250000}, Icon: "Wallet"},
		{Name: "Savings", Type: core.SavingsAccount, StartingBalance: core.Money{Cents: 800000}, Icon: "PiggyBank"},
		{Name: "Credit Card", Type: core.Credit, StartingBalance: core.Money{Cents: -120000}, Icon: "CreditCard"},
	}
	for _, a := range accounts {
		if _, err := s.records.InsertAccount(ctx, a); err != nil {
			return fmt.Errorf("seed account %q: %w", a.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded demo accounts", "count", len(accounts))
	return nil
}

func (s *Seeder) seedGoals(ctx context.Context) error {
	n, err := s.records.CountGoals(ctx)
	if err != nil {
		return fmt.Errorf("count goals: %w", err)
	}
	if n > 0 {
		return nil
	}
	goals := []core.Goal{
		{Name: "Emergency Fund", TargetAmount: core.Money{Cents: 1000000}, CurrentAmount: core.Money{Cents: 400000}},
		{Name: "Vacation", TargetAmount: core.Money{Cents: 300000}, CurrentAmount: core.Money{Cents: 120000}},
		{Name: "New Car", TargetAmount: core.Money{Cents: 2000000}, CurrentAmount: core.Money{Cents: 350000}},
	}
	for _, g := range goals {
		if _, err := s.records.InsertGoal(ctx, g); err != nil {
			return fmt.Errorf("seed goal %q: %w", g.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded demo goals", "count", len(goals))
	return nil
}

func (s *Seeder) seedDebts(ctx context.Context) error {
	n, err := s.records.CountDebts(ctx)
	if err != nil {
		return fmt.Errorf("count debts: %w", err)
	}
	if n > 0 {
		return nil
	}
	debts := []core.Debt{
		{Name: "Credit Card", Balance: core.Money{Cents: 120000}, InterestRate: 19.99, MinimumPayment: core.Money{Cents: 5000}},
		{Name: "Student Loan", Balance: core.Money{Cents: 850000}, InterestRate: 4.2, MinimumPayment: core.Money{Cents: 12000}},
		{Name: "Car Loan", Balance: core.Money{Cents: 540000}, InterestRate: 3.5, MinimumPayment: core.Money{Cents: 18000}},
	}
	for _, d := range debts {
		if _, err := s.records.InsertDebt(ctx, d); err != nil {
			return fmt.Errorf("seed debt %q: %w", d.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded demo debts", "count", len(debts))
	return nil
}

func (s *Seeder) seedBudgets(ctx context.Context) error {
	n, err := s.records.CountBudgetCategories(ctx)
	if err != nil {
		return fmt.Errorf("count budget categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	budgets := []core.BudgetCategory{
		{Name: "Food", MonthlyBudget: core.Money{Cents: 40000}},
		{Name: "Rent", MonthlyBudget: core.Money{Cents: 120000}},
		{Name: "Transport", MonthlyBudget: core.Money{Cents: 15000}},
		{Name: "Shopping", MonthlyBudget: core.Money{Cents: 25000}},
		{Name: "Entertainment", MonthlyBudget: core.Money{Cents: 15000}},
	}
	for _, b := range budgets {
		if _, err := s.records.InsertBudgetCategory(ctx, b); err != nil {
			return fmt.Errorf("seed budget %q: %w", b.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded demo budget categories", "count", len(budgets))
	return nil
}

func (s *Seeder) seedTransactions(ctx context.Context) error {
	n, err := s.records.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}
	if n > 0 {
		return nil
	}
	now := s.clock()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 320000}, Description: "Salary", Category: "Salary", Kind: core.Income, Date: daysAgo(10)},
		{Amount: core.Money{Cents: 20000}, Description: "Freelance Gig", Category: "Freelance", Kind: core.Income, Date: daysAgo(4)},
		{Amount: core.Money{Cents: 6500}, Description: "Groceries", Category: "Food", Kind: core.Expense, Date: daysAgo(3)},
		{Amount: core.Money{Cents: 120000}, Description: "Rent", Category: "Rent", Kind: core.Expense, Date: daysAgo(15)},
		{Amount: core.Money{Cents: 3500}, Description: "Transport Card", Category: "Transport", Kind: core.Expense, Date: daysAgo(2)},
		{Amount: core.Money{Cents: 30000}, Description: "Emergency Fund", Category: "Emergency Fund", Kind: core.Savings, Date: daysAgo(1)},
		{Amount: core.Money{Cents: 15000}, Description: "Credit Card Payment", Category: "Credit Card", Kind: core.DebtPayment, Date: daysAgo(6)},
	}
	for _, t := range txs {
		if _, err := s.records.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("seed transaction %q: %w", t.Description, err)
		}
	}
	slog.InfoContext(ctx, "Seeded demo transactions", "count", len(txs))
	return nil
}
