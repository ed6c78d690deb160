package core

import "time"

const (
	Daily   Timeframe = "daily"
	Weekly  Timeframe = "weekly"
	Monthly Timeframe = "monthly"
	Yearly  Timeframe = "yearly"
)

// Timeframe selects the aggregation window of a summary.
type Timeframe string

func (tf Timeframe) IsValid() bool {
	switch tf {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

// StartOfPeriod returns the half-open window start for the given timeframe:
// midnight of the current day, the Monday of the ISO week, the first of the
// month, or January 1st. An unknown timeframe returns now unchanged, which
// makes the window instant-wide; callers treat that as defined behavior, not
// an error. Boundaries are computed in now's location.
func StartOfPeriod(now time.Time, tf Timeframe) time.Time {
	switch tf {
	case Daily:
		return midnight(now)
	case Weekly:
		// ISO week starts Monday
		offset := (int(now.Weekday()) + 6) % 7
		return midnight(now.AddDate(0, 0, -offset))
	case Monthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case Yearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return now
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
