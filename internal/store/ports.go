// Package store defines the record-store ports the aggregation core reads
// from. Backends (SQLite, memory) implement these; the core never touches a
// database handle directly.
package store

import (
	"context"
	"time"

	"findash/internal/core"
)

// TransactionFilter scopes a transaction read. Zero values mean "no
// constraint": an empty Kind matches every kind and a zero From disables the
// window lower bound (date >= From).
type TransactionFilter struct {
	Kind core.Kind
	From time.Time
}

// Matches reports whether the transaction satisfies the filter.
func (f TransactionFilter) Matches(t core.Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	return true
}

type (
	TransactionStore interface {
		InsertTransaction(ctx context.Context, t core.Transaction) (string, error)
		ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error)
		CountTransactions(ctx context.Context) (int64, error)
	}

	AccountStore interface {
		InsertAccount(ctx context.Context, a core.Account) (string, error)
		ListAccounts(ctx context.Context) ([]core.Account, error)
		CountAccounts(ctx context.Context) (int64, error)
	}

	GoalStore interface {
		InsertGoal(ctx context.Context, g core.Goal) (string, error)
		ListGoals(ctx context.Context) ([]core.Goal, error)
		CountGoals(ctx context.Context) (int64, error)
	}

	DebtStore interface {
		InsertDebt(ctx context.Context, d core.Debt) (string, error)
		ListDebts(ctx context.Context) ([]core.Debt, error)
		CountDebts(ctx context.Context) (int64, error)
	}

	BudgetStore interface {
		InsertBudgetCategory(ctx context.Context, b core.BudgetCategory) (string, error)
		ListBudgetCategories(ctx context.Context) ([]core.BudgetCategory, error)
		CountBudgetCategories(ctx context.Context) (int64, error)
	}

	NotificationStore interface {
		InsertNotification(ctx context.Context, n core.Notification) (string, error)
		ListNotifications(ctx context.Context) ([]core.Notification, error)
	}
)

// Store is the union of every collection port a backend provides.
type Store interface {
	TransactionStore
	AccountStore
	GoalStore
	DebtStore
	BudgetStore
	NotificationStore
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error
