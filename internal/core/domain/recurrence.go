package domain

import (
	"sort"
	"time"
)

type RecurrenceKind string

const (
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// Recurrence describes how a task repeats. Days only applies to weekly
// recurrences; an empty set means "just add Interval weeks". EndDate, when
// set, stops the series: no occurrence may fall on or after it.
type Recurrence struct {
	Kind     RecurrenceKind
	Interval int
	Days     []time.Weekday
	EndDate  *time.Time
}

// Validate rejects malformed recurrences at the point they are set, so an
// unknown kind never reaches NextAfter.
func (r Recurrence) Validate() error {
	switch r.Kind {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return ErrInvalidRecurrence
	}
	if r.Interval < 1 {
		return ErrInvalidRecurrence
	}
	if r.Kind != RecurrenceWeekly && len(r.Days) > 0 {
		return ErrInvalidRecurrence
	}
	seen := map[time.Weekday]bool{}
	for _, day := range r.Days {
		if day < time.Sunday || day > time.Saturday || seen[day] {
			return ErrInvalidRecurrence
		}
		seen[day] = true
	}
	return nil
}

func (r Recurrence) Clone() Recurrence {
	clone := r
	if r.Days != nil {
		clone.Days = append([]time.Weekday(nil), r.Days...)
	}
	if r.EndDate != nil {
		value := *r.EndDate
		clone.EndDate = &value
	}
	return clone
}

// NextAfter computes the due date of the occurrence following ref. It is
// pure and assumes a validated recurrence. The second return value is false
// when the series has ended: the computed date would fall on or after
// EndDate.
func (r Recurrence) NextAfter(ref time.Time) (time.Time, bool) {
	var next time.Time
	switch r.Kind {
	case RecurrenceDaily:
		next = ref.AddDate(0, 0, r.Interval)
	case RecurrenceWeekly:
		if len(r.Days) == 0 {
			next = ref.AddDate(0, 0, 7*r.Interval)
		} else {
			next = nextWeekday(ref, r.Days, r.Interval)
		}
	case RecurrenceMonthly:
		next = addMonthsClamped(ref, r.Interval)
	}
	if r.EndDate != nil && !next.Before(*r.EndDate) {
		return time.Time{}, false
	}
	return next, true
}

// nextWeekday lands on the soonest listed weekday strictly after ref's
// weekday; when the remaining week has none, it wraps to the first listed
// day of the following interval block.
func nextWeekday(ref time.Time, days []time.Weekday, interval int) time.Time {
	sorted := append([]time.Weekday(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	weekday := ref.Weekday()
	for _, day := range sorted {
		if day > weekday {
			return ref.AddDate(0, 0, int(day-weekday))
		}
	}
	return ref.AddDate(0, 0, 7*interval-int(weekday)+int(sorted[0]))
}

// addMonthsClamped adds months keeping the day-of-month, clamping to the
// last day when the target month is shorter (Jan 31 -> Feb 28/29).
func addMonthsClamped(ref time.Time, months int) time.Time {
	year, month, day := ref.Date()
	// First of the target month; time.Date normalizes month overflow.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, ref.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	hour, minute, sec := ref.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, ref.Nanosecond(), ref.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
