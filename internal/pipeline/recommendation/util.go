package recommendation

import "time"

// Day truncates t to its calendar day at UTC midnight, keeping the wall-clock
// date of t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween returns the number of whole days from a to b. Both must be
// values returned by Day. Unix seconds keep this exact for windows longer
// than a time.Duration can hold.
func daysBetween(a, b time.Time) int {
	return int(b.Unix()/secondsPerDay - a.Unix()/secondsPerDay)
}

// DefaultRange returns January 1 through December 31 of now's year.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	y := now.Year()
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}
