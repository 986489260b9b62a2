package session

import (
	"time"
)

// ClinicHours is the practice-wide booking window, wall-clock per day.
type ClinicHours struct {
	Open  string // "15:04"
	Close string // "15:04"
}

// WithinClinicHours validates that a session window falls inside the clinic
// operating window on its own day. Both bounds are wall-clock comparisons in
// the session's location.
func WithinClinicHours(hours ClinicHours, start, end time.Time) bool {
	loc := start.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	open, ok := parseHM(hours.Open)
	if !ok {
		return false
	}
	closeAt, ok := parseHM(hours.Close)
	if !ok {
		return false
	}

	if start.Before(open) || end.After(closeAt) {
		return false
	}
	return true
}
