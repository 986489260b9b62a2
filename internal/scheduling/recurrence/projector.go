package recurrence

import (
	"sort"
	"time"
)

// Projection is the advisory arithmetic for a recurring series measured
// against the client's remaining authorization balance.
type Projection struct {
	InstanceCount    int `json:"instance_count"`
	ProjectedMinutes int `json:"projected_minutes"`

	// Advisory only. Surfaced to the user; the composer's gating decides
	// whether to allow commit.
	ExceedsAuthorization bool `json:"exceeds_authorization"`
	OverageMinutes       int  `json:"overage_minutes"`
}

// Project expands a session template across chosen weekdays on a weekly
// cadence: each selected weekday within each week cycle counts as one
// instance. Degenerate inputs (occurrences < 1 or no weekdays) clamp to a
// single non-recurring instance.
func Project(durationMinutes int, weekdays []time.Weekday, occurrences int, remainingMinutes int, hasAuthorization bool) Projection {
	instances := 1
	if occurrences >= 1 && len(weekdays) > 0 {
		instances = occurrences * len(weekdays)
	}

	p := Projection{
		InstanceCount:    instances,
		ProjectedMinutes: instances * durationMinutes,
	}

	if hasAuthorization && p.ProjectedMinutes > remainingMinutes {
		p.ExceedsAuthorization = true
		p.OverageMinutes = p.ProjectedMinutes - remainingMinutes
	}
	return p
}

// Occurrence is one generated instance of a series.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Expand generates the concrete occurrence windows for a weekly series
// anchored on the template session. Week 0 is the calendar week containing
// the template start (weeks begin Monday); each occurrence keeps the
// template's wall-clock time of day, so series spanning DST transitions
// stay on the same local time.
func Expand(templateStart, templateEnd time.Time, weekdays []time.Weekday, occurrences int) []Occurrence {
	if occurrences < 1 || len(weekdays) == 0 {
		return []Occurrence{{Start: templateStart, End: templateEnd}}
	}

	duration := templateEnd.Sub(templateStart)
	loc := templateStart.Location()
	anchor := startOfWeek(templateStart)

	days := append([]time.Weekday(nil), weekdays...)
	sort.Slice(days, func(i, j int) bool {
		return weekdayIndex(days[i]) < weekdayIndex(days[j])
	})

	out := make([]Occurrence, 0, occurrences*len(days))
	for week := 0; week < occurrences; week++ {
		for _, day := range days {
			date := anchor.AddDate(0, 0, week*7+weekdayIndex(day))
			start := time.Date(
				date.Year(), date.Month(), date.Day(),
				templateStart.Hour(), templateStart.Minute(), 0, 0,
				loc,
			)
			out = append(out, Occurrence{Start: start, End: start.Add(duration)})
		}
	}
	return out
}

// startOfWeek returns midnight Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := weekdayIndex(t.Weekday())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// weekdayIndex orders Monday..Sunday as 0..6.
func weekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
