package timeline

import (
	"math"
	"sort"
	"time"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// MinWidthFraction keeps short sessions clickable on the grid.
const MinWidthFraction = 0.02

// Window describes the visible slice of the schedule: a first day, a number
// of horizon days, and the per-day time band rendered on each lane.
type Window struct {
	Start        time.Time // first visible day, any time-of-day; only the date matters
	HorizonDays  int
	DayStartHour int
	DayMinutes   int
}

func (w Window) totalMinutes() int {
	return w.DayMinutes * w.HorizonDays
}

// dayIndex is the calendar-day difference between t and the window start.
// Days are wall-clock days, not fixed 24h blocks, so geometry stays aligned
// across daylight-saving transitions.
func (w Window) dayIndex(t time.Time) int {
	anchor := midnight(w.Start)
	day := midnight(t.In(w.Start.Location()))
	return int(math.Round(day.Sub(anchor).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Fraction maps an instant to [0,1] across the window. The second return is
// false when the instant falls outside the visible window.
func (w Window) Fraction(t time.Time) (float64, bool) {
	day := w.dayIndex(t)
	if day < 0 || day >= w.HorizonDays {
		return 0, false
	}

	local := t.In(w.Start.Location())
	minute := (local.Hour()-w.DayStartHour)*60 + local.Minute()
	if minute < 0 || minute > w.DayMinutes {
		return 0, false
	}

	return float64(day*w.DayMinutes+minute) / float64(w.totalMinutes()), true
}

// TimeAt is the inverse transform: a lane fraction back to an instant,
// snapped to the given minute grid. Used to translate drag offsets into
// proposed start times.
func (w Window) TimeAt(fraction float64, snapMinutes int) time.Time {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	total := fraction * float64(w.totalMinutes())
	day := int(total) / w.DayMinutes
	if day > w.HorizonDays-1 {
		day = w.HorizonDays - 1
	}

	minuteWithinDay := total - float64(day*w.DayMinutes)
	if snapMinutes > 0 {
		minuteWithinDay = math.Round(minuteWithinDay/float64(snapMinutes)) * float64(snapMinutes)
	}

	base := midnight(w.Start).AddDate(0, 0, day)
	return time.Date(
		base.Year(), base.Month(), base.Day(),
		w.DayStartHour, 0, 0, 0,
		w.Start.Location(),
	).Add(time.Duration(minuteWithinDay) * time.Minute)
}

// NowFraction places the current-time marker, when it is on screen.
func NowFraction(now time.Time, w Window) (float64, bool) {
	return w.Fraction(now)
}

// Geometry is the derived spatial placement of one visible session. It is
// recomputed on every render and never stored.
type Geometry struct {
	SessionID string `json:"session_id"`
	LaneID    string `json:"lane_id"`

	LeftFraction  float64 `json:"left_fraction"`
	WidthFraction float64 `json:"width_fraction"`

	StackIndex int `json:"stack_index"`
	StackCount int `json:"stack_count"`
}

// Layout maps sessions onto the lane × time-of-week grid. It is pure: an
// unchanged session set and window produce identical output, in a
// deterministic order (lane, then start, then session id). Sessions outside
// the window, on other lanes, or cancelled are omitted.
func Layout(sessions []models.Session, w Window, laneIDs []string) []Geometry {
	laneOrder := make(map[string]int, len(laneIDs))
	for i, id := range laneIDs {
		laneOrder[id] = i
	}

	type placed struct {
		geo   Geometry
		start time.Time
	}

	visible := make([]placed, 0, len(sessions))
	for _, sess := range sessions {
		if _, ok := laneOrder[sess.StaffID]; !ok {
			continue
		}
		if !domain.Active(domain.Status(sess.Status)) {
			continue
		}

		left, ok := w.Fraction(sess.Start)
		if !ok {
			continue
		}

		width := float64(sess.DurationMinutes()) / float64(w.totalMinutes())
		if width < MinWidthFraction {
			width = MinWidthFraction
		}

		visible = append(visible, placed{
			geo: Geometry{
				SessionID:     sess.ID,
				LaneID:        sess.StaffID,
				LeftFraction:  left,
				WidthFraction: width,
			},
			start: sess.Start,
		})
	}

	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if laneOrder[a.geo.LaneID] != laneOrder[b.geo.LaneID] {
			return laneOrder[a.geo.LaneID] < laneOrder[b.geo.LaneID]
		}
		if !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		return a.geo.SessionID < b.geo.SessionID
	})

	// Same-start buckets per lane: sessions sharing an exact start instant
	// receive stack indices so none are fully occluded. The sort above
	// already orders each bucket by session id.
	type bucketKey struct {
		lane  string
		start int64
	}
	counts := make(map[bucketKey]int)
	for _, p := range visible {
		counts[bucketKey{p.geo.LaneID, p.start.UnixNano()}]++
	}

	next := make(map[bucketKey]int)
	out := make([]Geometry, 0, len(visible))
	for _, p := range visible {
		key := bucketKey{p.geo.LaneID, p.start.UnixNano()}
		p.geo.StackIndex = next[key]
		p.geo.StackCount = counts[key]
		next[key]++
		out = append(out, p.geo)
	}
	return out
}
