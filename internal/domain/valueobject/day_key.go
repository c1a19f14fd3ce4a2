// Package valueobject contains domain value objects for the treasury system.
package valueobject

import "time"

// DayKey is a calendar-day map key. Override and aggregate lookups are
// pre-indexed by (PSP, DayKey) once per computation batch instead of being
// rebuilt per request.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf builds a DayKey from a time, ignoring the clock and location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the key as a UTC midnight time.
func (k DayKey) Time() time.Time {
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the key of the following calendar day.
func (k DayKey) Next() DayKey {
	return DayKeyOf(k.Time().AddDate(0, 0, 1))
}

// IsFirstDayOfMonth reports whether the key is the first day of its month.
func (k DayKey) IsFirstDayOfMonth() bool {
	return k.Day == 1
}

// IsLastDayOfMonth reports whether the key is the last day of its month.
func (k DayKey) IsLastDayOfMonth() bool {
	return k.Time().AddDate(0, 0, 1).Day() == 1
}

// String formats the key as YYYY-MM-DD.
func (k DayKey) String() string {
	return k.Time().Format("2006-01-02")
}
