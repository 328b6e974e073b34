// Package dateshift holds the calendar math used when an event is
// duplicated: every date on the clone keeps its original day-distance
// from the event's start date.
package dateshift

import "time"

const millisPerDay = 24 * 60 * 60 * 1000

// AddMonths advances t by n calendar months using native rollover:
// a day-of-month that does not exist in the target month rolls into
// the following month (Jan 31 + 1 month lands in early March). Clone
// dates depend on this behavior, do not normalize it.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// AddDays shifts t by n days. n may be negative.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayOffset returns the signed day count from a to b, taking the
// ceiling of the millisecond difference. Fractional days caused by
// DST or timezone artifacts round up, never to nearest; for negative
// spans truncation toward zero is already the ceiling.
func DayOffset(a, b time.Time) int {
	ms := b.Sub(a).Milliseconds()
	days := ms / millisPerDay
	if ms%millisPerDay > 0 {
		days++
	}

	return int(days)
}

// Shifter re-anchors optional dates from a source event onto a cloned
// event. SourceStart is the source event's start date, NewStart the
// clone's. A nil SourceStart makes every shifted date nil: without an
// anchor no offset can be computed.
type Shifter struct {
	SourceStart *time.Time
	NewStart    time.Time
}

// Shift maps d to its equivalent position relative to NewStart,
// preserving the day offset d had from SourceStart. Returns nil when
// either d or the source anchor is absent.
func (s Shifter) Shift(d *time.Time) *time.Time {
	if s.SourceStart == nil || d == nil {
		return nil
	}

	shifted := AddDays(s.NewStart, DayOffset(*s.SourceStart, *d))

	return &shifted
}
