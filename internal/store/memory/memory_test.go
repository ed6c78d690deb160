package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

func TestInsertTransactionNormalizesAmount(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.InsertTransaction(ctx, core.Transaction{
		Amount:   core.Money{Cents: -6500},
		Category: "Food",
		Kind:     core.Expense,
		Date:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertTransaction error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	txs, err := s.ListTransactions(ctx, store.TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Amount.Cents != 6500 {
		t.Errorf("stored amount = %d, want absolute 6500", txs[0].Amount.Cents)
	}
}

func TestInsertTransactionRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.InsertTransaction(context.Background(), core.Transaction{
		Amount: core.Money{Cents: 100},
		Kind:   core.Expense,
		Date:   time.Now(),
	})
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Errorf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestListTransactionsFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	seedTx := []core.Transaction{
		{Amount: core.Money{Cents: 320000}, Category: "Salary", Kind: core.Income, Date: base.AddDate(0, 0, -10)},
		{Amount: core.Money{Cents: 6500}, Category: "Food", Kind: core.Expense, Date: base.AddDate(0, 0, -3)},
		{Amount: core.Money{Cents: 3500}, Category: "Transport", Kind: core.Expense, Date: base.AddDate(0, 0, -1)},
	}
	for _, tx := range seedTx {
		if _, err := s.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter store.TransactionFilter
		want   int
	}{
		{"no filter", store.TransactionFilter{}, 3},
		{"kind only", store.TransactionFilter{Kind: core.Expense}, 2},
		{"from only", store.TransactionFilter{From: base.AddDate(0, 0, -5)}, 2},
		{"kind and from", store.TransactionFilter{Kind: core.Expense, From: base.AddDate(0, 0, -2)}, 1},
		{"from boundary is inclusive", store.TransactionFilter{From: base.AddDate(0, 0, -10)}, 3},
		{"no match", store.TransactionFilter{Kind: core.DebtPayment}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListTransactions error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d transactions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.InsertAccount(ctx, core.Account{Name: "Checking", Type: core.Checking, StartingBalance: core.Money{Cents: 250000}}); err != nil {
		t.Fatalf("InsertAccount error: %v", err)
	}

	first, _ := s.ListAccounts(ctx)
	first[0].Name = "mutated"

	second, _ := s.ListAccounts(ctx)
	if second[0].Name != "Checking" {
		t.Error("mutating a listed account leaked into the store")
	}
}

func TestCounts(t *testing.T) {
	s := New()
	ctx := context.Background()

	if n, _ := s.CountAccounts(ctx); n != 0 {
		t.Fatalf("empty store CountAccounts = %d, want 0", n)
	}

	if _, err := s.InsertGoal(ctx, core.Goal{Name: "Vacation", TargetAmount: core.Money{Cents: 300000}}); err != nil {
		t.Fatalf("InsertGoal error: %v", err)
	}
	if _, err := s.InsertBudgetCategory(ctx, core.BudgetCategory{Name: "Food", MonthlyBudget: core.Money{Cents: 40000}}); err != nil {
		t.Fatalf("InsertBudgetCategory error: %v", err)
	}

	if n, _ := s.CountGoals(ctx); n != 1 {
		t.Errorf("CountGoals = %d, want 1", n)
	}
	if n, _ := s.CountBudgetCategories(ctx); n != 1 {
		t.Errorf("CountBudgetCategories = %d, want 1", n)
	}
}
