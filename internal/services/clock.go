package services

import "time"

// dateOnly truncates a timestamp to its UTC calendar date. Deadlines are
// stored and compared at day granularity only.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
