package domain

import "time"

// CivilDate truncates t to its calendar day, read in t's own location, and
// returns it as midnight UTC so days from different zones compare directly.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar day of now as seen in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return CivilDate(now.In(loc))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return CivilDate(a).Equal(CivilDate(b))
}
