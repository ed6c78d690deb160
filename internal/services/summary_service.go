package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

// SummaryService is the period-based aggregation engine. Each call is a pure
// read-reduce over store snapshots: no caching, no shared mutable state, and a
// single reference instant sampled per call so window resolution and budget
// anchoring cannot drift.
type SummaryService struct {
	records store.Store
	clock   func() time.Time
}

func NewSummaryService(records store.Store) *SummaryService {
	return &SummaryService{
		records: records,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Summarize aggregates the window [StartOfPeriod(now, tf), now] into a report.
// A request mid-period returns partial totals as of the sampled instant.
func (s *SummaryService) Summarize(ctx context.Context, tf core.Timeframe) (core.SummaryReport, error) {
	now := s.clock()
	start := core.StartOfPeriod(now, tf)

	txs, err := s.records.ListTransactions(ctx, store.TransactionFilter{From: start})
	if err != nil {
		return core.SummaryReport{}, fmt.Errorf("list transactions: %w", err)
	}

	report := core.SummaryReport{
		Timeframe:         tf,
		IncomeSources:     map[string]core.Money{},
		ExpenseCategories: map[string]core.Money{},
		BudgetUsage:       []core.BudgetUsage{},
	}

	var income, expenses, savings, debtPayments int64
	for _, t := range txs {
		amount := t.Amount.Abs().Cents
		cat := t.Category
		if cat == "" {
			cat = core.FallbackCategory
		}
		switch t.Kind {
		case core.Income:
			income += amount
			report.IncomeSources[cat] = core.Money{Cents: report.IncomeSources[cat].Cents + amount}
		case core.Expense:
			expenses += amount
			report.ExpenseCategories[cat] = core.Money{Cents: report.ExpenseCategories[cat].Cents + amount}
		case core.Savings:
			savings += amount
		case core.DebtPayment:
			debtPayments += amount
		}
	}

	report.Metrics.Income = core.Money{Cents: income}
	report.Metrics.Expenses = core.Money{Cents: expenses}
	report.Metrics.Savings = core.Money{Cents: savings}
	report.Metrics.DebtPayments = core.Money{Cents: debtPayments}
	// Savings and debt payments are deliberate allocations, not unplanned
	// spend, so they stay out of cash flow.
	report.Metrics.CashFlow = core.Money{Cents: income - expenses}

	if tf == core.Daily || tf == core.Weekly || tf == core.Monthly {
		usage, err := s.budgetUsage(ctx, now)
		if err != nil {
			return core.SummaryReport{}, err
		}
		report.BudgetUsage = usage
	}

	goals, err := s.records.ListGoals(ctx)
	if err != nil {
		return core.SummaryReport{}, fmt.Errorf("list goals: %w", err)
	}
	debts, err := s.records.ListDebts(ctx)
	if err != nil {
		return core.SummaryReport{}, fmt.Errorf("list debts: %w", err)
	}
	accounts, err := s.records.ListAccounts(ctx)
	if err != nil {
		return core.SummaryReport{}, fmt.Errorf("list accounts: %w", err)
	}
	report.Goals = goals
	report.Debts = debts
	report.Accounts = accounts

	var cashOnHand, totalGoals, totalDebt int64
	for _, a := range accounts {
		if a.Type.Liquid() {
			cashOnHand += a.StartingBalance.Cents
		}
	}
	for _, g := range goals {
		totalGoals += g.CurrentAmount.Cents
	}
	for _, d := range debts {
		totalDebt += d.Balance.Cents
	}
	report.Metrics.CashOnHand = core.Money{Cents: cashOnHand}
	report.Metrics.TotalDebt = core.Money{Cents: totalDebt}
	report.Metrics.NetWorth = core.Money{Cents: cashOnHand + totalGoals - totalDebt}

	slog.DebugContext(ctx, "Summary computed",
		"timeframe", tf,
		"window_start", start,
		"transactions", len(txs),
		"net_worth_cents", report.Metrics.NetWorth.Cents)

	return report, nil
}

// budgetUsage recomputes month-to-date expenses grouped by category,
// anchored to the calendar month containing now regardless of the
// requested timeframe. Every budget category record is represented;
// expense categories without a budget are dropped here (they still
// appear in the expense breakdown).
func (s *SummaryService) budgetUsage(ctx context.Context, now time.Time) ([]core.BudgetUsage, error) {
	monthStart := core.StartOfPeriod(now, core.Monthly)
	monthExpenses, err := s.records.ListTransactions(ctx, store.TransactionFilter{
		Kind: core.Expense,
		From: monthStart,
	})
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}

	byCategory := map[string]int64{}
	for _, t := range monthExpenses {
		cat := t.Category
		if cat == "" {
			cat = core.FallbackCategory
		}
		byCategory[cat] += t.Amount.Abs().Cents
	}

	budgets, err := s.records.ListBudgetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budget categories: %w", err)
	}

	usage := make([]core.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		usage = append(usage, core.BudgetUsage{
			Name:   b.Name,
			Spent:  core.Money{Cents: byCategory[b.Name]},
			Budget: b.MonthlyBudget,
		})
	}
	return usage, nil
}
