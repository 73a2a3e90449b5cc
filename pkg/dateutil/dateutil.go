// Package dateutil defines the day boundary used by every cap, reset, and
// streak check: the UTC calendar day. Local-midnight boundaries are never
// used, so two call sites can never disagree about what "today" means.
package dateutil

import "time"

const dayLayout = "2006-01-02"

// BeginningOfDay returns midnight UTC of the day containing t.
func BeginningOfDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// DayString returns the UTC calendar day of t as YYYY-MM-DD.
func DayString(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayString(a) == DayString(b)
}

// SameWeek reports whether a and b fall in the same ISO week.
func SameWeek(a, b time.Time) bool {
	ay, aw := a.UTC().ISOWeek()
	by, bw := b.UTC().ISOWeek()
	return ay == by && aw == bw
}

// IsDayBefore reports whether day (YYYY-MM-DD) is the UTC calendar day
// immediately before t's day. Used by streak continuation checks.
func IsDayBefore(day string, t time.Time) bool {
	return day == DayString(t.UTC().AddDate(0, 0, -1))
}

// NextDay returns midnight UTC of the day after t.
func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// NextHour returns the beginning of the hour after t.
func NextHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour).Add(time.Hour)
}
