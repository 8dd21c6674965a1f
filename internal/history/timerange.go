package history

import "time"

// Range names a predefined or custom time window for history filtering.
type Range string

const (
	RangeToday    Range = "today"
	RangeWeek     Range = "1_week"
	RangeTwoWeeks Range = "2_weeks"
	RangeMonth    Range = "1_month"
	RangeCustom   Range = "custom"
	RangeAll      Range = "all"
)

// Window is a date window with optional bounds. A nil bound is unbounded;
// both bounds are inclusive.
type Window struct {
	From *time.Time
	To   *time.Time
}

// WindowFor resolves a named range against a reference instant. The start and
// end arguments apply only to RangeCustom; either may be nil. Unknown range
// names behave like RangeAll.
func WindowFor(r Range, now time.Time, start, end *time.Time) Window {
	switch r {
	case RangeToday:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Window{From: &from}
	case RangeWeek:
		from := now.AddDate(0, 0, -7)
		return Window{From: &from}
	case RangeTwoWeeks:
		from := now.AddDate(0, 0, -14)
		return Window{From: &from}
	case RangeMonth:
		// Calendar-aware: one month back, not a fixed 30 days.
		from := now.AddDate(0, -1, 0)
		return Window{From: &from}
	case RangeCustom:
		return Window{From: start, To: end}
	}

	return Window{}
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}

	if w.To != nil && t.After(*w.To) {
		return false
	}

	return true
}

// FilterByWindow keeps the entries whose timestamp falls inside the window.
// The input slice is not mutated.
func FilterByWindow(entries []*Entry, w Window) []*Entry {
	filtered := make([]*Entry, 0, len(entries))

	for _, e := range entries {
		if w.Contains(e.OccurredAt) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}
