package services

import (
	"context"
	"fmt"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

// Thresholds for derived notifications. Budget alerts fire at 90% of the
// monthly budget; goal milestones at 50%, 75% and 100% of the target.
const (
	budgetAlertNum = 9
	budgetAlertDen = 10
)

// NotificationService synthesizes transient alerts from the monthly summary
// and merges them with stored notifications. Results are recomputed on every
// call and never persisted or deduplicated.
type NotificationService struct {
	summaries *SummaryService
	records   store.NotificationStore
	clock     func() time.Time
}

func NewNotificationService(summaries *SummaryService, records store.NotificationStore) *NotificationService {
	return &NotificationService{
		summaries: summaries,
		records:   records,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// Derive returns stored notifications followed by the computed ones.
func (n *NotificationService) Derive(ctx context.Context) ([]core.Notification, error) {
	stored, err := n.records.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored notifications: %w", err)
	}

	computed, err := n.Computed(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]core.Notification, 0, len(stored)+len(computed))
	out = append(out, stored...)
	out = append(out, computed...)
	return out, nil
}

// Computed derives the ephemeral notifications off a fresh monthly summary,
// regardless of any caller-facing timeframe. All notifications from one call
// share a single timestamp.
func (n *NotificationService) Computed(ctx context.Context) ([]core.Notification, error) {
	now := n.clock()

	report, err := n.summaries.Summarize(ctx, core.Monthly)
	if err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}

	var out []core.Notification

	// Budget rule: at or above 90% of a positive monthly budget.
	for _, u := range report.BudgetUsage {
		if u.Budget.Cents <= 0 {
			continue
		}
		if u.Spent.Cents*budgetAlertDen >= u.Budget.Cents*budgetAlertNum {
			pct := u.Spent.Cents * 100 / u.Budget.Cents // truncated integer percent
			out = append(out, core.Notification{
				Kind:    core.BudgetAlert,
				Message: fmt.Sprintf("You're at %d%% of your %s budget", pct, u.Name),
				Date:    now,
			})
		}
	}

	// Bill rule: every debt with a minimum payment.
	for _, d := range report.Debts {
		if d.MinimumPayment.Cents <= 0 {
			continue
		}
		out = append(out, core.Notification{
			Kind:    core.BillAlert,
			Message: fmt.Sprintf("Upcoming bill: %s minimum payment $%d", d.Name, roundToUnit(d.MinimumPayment)),
			Date:    now,
		})
	}

	// Goal rule: only the highest threshold crossed fires.
	for _, g := range report.Goals {
		target := g.TargetAmount.Cents
		if target < 100 {
			target = 100 // denominator floored at one unit
		}
		current := g.CurrentAmount.Cents
		var msg string
		switch {
		case current >= target:
			msg = fmt.Sprintf("Goal reached: %s", g.Name)
		case current*4 >= target*3:
			msg = fmt.Sprintf("Great! %s is 75%% funded", g.Name)
		case current*2 >= target:
			msg = fmt.Sprintf("Halfway there on %s", g.Name)
		default:
			continue
		}
		out = append(out, core.Notification{
			Kind:    core.GoalAlert,
			Message: msg,
			Date:    now,
		})
	}

	return out, nil
}

// roundToUnit rounds cents to the nearest whole currency unit.
func roundToUnit(m core.Money) int64 {
	cents := m.Cents
	if cents < 0 {
		return -((-cents + 50) / 100)
	}
	return (cents + 50) / 100
}
