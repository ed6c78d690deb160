package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"findash/internal/core"
	"findash/internal/store"
)

// SQLiteRepository implements the record-store ports on top of SQLite.
// Dates are stored as RFC 3339 UTC strings so lexicographic comparison
// matches chronological order.
type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// dateLayout is fixed-width: RFC3339Nano trims trailing fractional zeros,
// which breaks the lexicographic-equals-chronological property the SQL
// date comparisons rely on ('.' sorts before 'Z').
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func decodeDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (string, error) {
	// Sign carries no meaning; normalize before validation so negative
	// amounts are stored as their absolute value instead of rejected.
	t.Amount = t.Amount.Abs()
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, amount_cents, description, category, kind, account_id, date, recurring)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Amount.Cents, t.Description, t.Category, string(t.Kind), t.AccountID, encodeDate(t.Date), t.Recurring)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"kind", t.Kind,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t.ID, nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, f store.TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT id, amount_cents, description, category, kind, account_id, date, recurring FROM transactions`
	var (
		conds []string
		args  []any
	)
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if !f.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, encodeDate(f.From))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t         core.Transaction
			amount    sql.NullInt64
			desc      sql.NullString
			category  sql.NullString
			accountID sql.NullString
			date      string
		)
		if err := rows.Scan(&t.ID, &amount, &desc, &category, &t.Kind, &accountID, &date, &t.Recurring); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		// Malformed rows degrade to defaults instead of aborting the read.
		t.Amount = core.Money{Cents: amount.Int64}
		t.Description = desc.String
		t.Category = category.String
		if t.Category == "" {
			t.Category = core.FallbackCategory
		}
		t.AccountID = accountID.String
		t.Date = decodeDate(date)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int64, error) {
	return r.count(ctx, "transactions")
}

func (r *SQLiteRepository) InsertAccount(ctx context.Context, a core.Account) (string, error) {
	if err := a.Validate(); err != nil {
		return "", fmt.Errorf("validate account: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, type, starting_balance_cents, icon) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, string(a.Type), a.StartingBalance.Cents, a.Icon)
	if err != nil {
		return "", fmt.Errorf("insert account: %w", err)
	}
	return a.ID, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, starting_balance_cents, icon FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var (
			a       core.Account
			balance sql.NullInt64
			icon    sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &balance, &icon); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.StartingBalance = core.Money{Cents: balance.Int64}
		a.Icon = icon.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountAccounts(ctx context.Context) (int64, error) {
	return r.count(ctx, "accounts")
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate goal: %w", err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, name, target_amount_cents, current_amount_cents) VALUES (?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}
	return g.ID, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_amount_cents, current_amount_cents FROM goals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g       core.Goal
			target  sql.NullInt64
			current sql.NullInt64
		)
		if err := rows.Scan(&g.ID, &g.Name, &target, &current); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.TargetAmount = core.Money{Cents: target.Int64}
		g.CurrentAmount = core.Money{Cents: current.Int64}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountGoals(ctx context.Context) (int64, error) {
	return r.count(ctx, "goals")
}

func (r *SQLiteRepository) InsertDebt(ctx context.Context, d core.Debt) (string, error) {
	if err := d.Validate(); err != nil {
		return "", fmt.Errorf("validate debt: %w", err)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, name, balance_cents, interest_rate, minimum_payment_cents) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Balance.Cents, d.InterestRate, d.MinimumPayment.Cents)
	if err != nil {
		return "", fmt.Errorf("insert debt: %w", err)
	}
	return d.ID, nil
}

func (r *SQLiteRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, balance_cents, interest_rate, minimum_payment_cents FROM debts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		var (
			d       core.Debt
			balance sql.NullInt64
			rate    sql.NullFloat64
			minPay  sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.Name, &balance, &rate, &minPay); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		d.Balance = core.Money{Cents: balance.Int64}
		d.InterestRate = rate.Float64
		d.MinimumPayment = core.Money{Cents: minPay.Int64}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate debts: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountDebts(ctx context.Context) (int64, error) {
	return r.count(ctx, "debts")
}

func (r *SQLiteRepository) InsertBudgetCategory(ctx context.Context, b core.BudgetCategory) (string, error) {
	if err := b.Validate(); err != nil {
		return "", fmt.Errorf("validate budget category: %w", err)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_categories (id, name, monthly_budget_cents) VALUES (?, ?, ?)`,
		b.ID, b.Name, b.MonthlyBudget.Cents)
	if err != nil {
		return "", fmt.Errorf("insert budget category: %w", err)
	}
	return b.ID, nil
}

func (r *SQLiteRepository) ListBudgetCategories(ctx context.Context) ([]core.BudgetCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, monthly_budget_cents FROM budget_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query budget categories: %w", err)
	}
	defer rows.Close()

	var out []core.BudgetCategory
	for rows.Next() {
		var (
			b      core.BudgetCategory
			budget sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Name, &budget); err != nil {
			return nil, fmt.Errorf("scan budget category: %w", err)
		}
		b.MonthlyBudget = core.Money{Cents: budget.Int64}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CountBudgetCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, "budget_categories")
}

func (r *SQLiteRepository) InsertNotification(ctx context.Context, n core.Notification) (string, error) {
	if err := n.Validate(); err != nil {
		return "", fmt.Errorf("validate notification: %w", err)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, kind, message, date) VALUES (?, ?, ?, ?)`,
		n.ID, string(n.Kind), n.Message, encodeDate(n.Date))
	if err != nil {
		return "", fmt.Errorf("insert notification: %w", err)
	}
	return n.ID, nil
}

func (r *SQLiteRepository) ListNotifications(ctx context.Context) ([]core.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, message, date FROM notifications ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []core.Notification
	for rows.Next() {
		var (
			n    core.Notification
			date string
		)
		if err := rows.Scan(&n.ID, &n.Kind, &n.Message, &date); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Date = decodeDate(date)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
