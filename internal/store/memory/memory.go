// Package memory provides an in-process record store. It backs local
// development and tests; every read returns copies so callers cannot mutate
// shared state.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"findash/internal/core"
	"findash/internal/store"
)

type Store struct {
	mu            sync.Mutex
	transactions  []core.Transaction
	accounts      []core.Account
	goals         []core.Goal
	debts         []core.Debt
	budgets       []core.BudgetCategory
	notifications []core.Notification
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) InsertTransaction(_ context.Context, t core.Transaction) (string, error) {
	// Sign carries no meaning; normalize before validation so negative
	// amounts are stored as their absolute value instead of rejected.
	t.Amount = t.Amount.Abs()
	if err := t.Validate(); err != nil {
		return "", err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
	return t.ID, nil
}

func (s *Store) ListTransactions(_ context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) CountTransactions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.transactions)), nil
}

func (s *Store) InsertAccount(_ context.Context, a core.Account) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return a.ID, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}

func (s *Store) CountAccounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.accounts)), nil
}

func (s *Store) InsertGoal(_ context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return g.ID, nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...), nil
}

func (s *Store) CountGoals(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.goals)), nil
}

func (s *Store) InsertDebt(_ context.Context, d core.Debt) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debts = append(s.debts, d)
	return d.ID, nil
}

func (s *Store) ListDebts(_ context.Context) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Debt(nil), s.debts...), nil
}

func (s *Store) CountDebts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.debts)), nil
}

func (s *Store) InsertBudgetCategory(_ context.Context, b core.BudgetCategory) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, b)
	return b.ID, nil
}

func (s *Store) ListBudgetCategories(_ context.Context) ([]core.BudgetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BudgetCategory(nil), s.budgets...), nil
}

func (s *Store) CountBudgetCategories(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.budgets)), nil
}

func (s *Store) InsertNotification(_ context.Context, n core.Notification) (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return n.ID, nil
}

func (s *Store) ListNotifications(_ context.Context) ([]core.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Notification(nil), s.notifications...), nil
}
