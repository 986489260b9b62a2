package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

func testWindow(loc *time.Location) Window {
	return Window{
		Start:        time.Date(2026, 3, 2, 0, 0, 0, 0, loc), // Monday
		HorizonDays:  7,
		DayStartHour: 7,
		DayMinutes:   720, // 07:00 - 19:00
	}
}

func sessionAt(id, staffID string, start time.Time, minutes int) models.Session {
	return models.Session{
		ID: id, StaffID: staffID, ClientID: "CLI-1",
		Start: start, End: start.Add(time.Duration(minutes) * time.Minute),
		Status: string(domain.StatusScheduled),
	}
}

func TestFractionMapsDayAndMinute(t *testing.T) {
	w := testWindow(time.UTC)

	// Monday 07:00 is the window origin
	f, ok := w.Fraction(time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Zero(t, f)

	// Tuesday 07:00 is exactly one day in
	f, ok = w.Fraction(time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, 1.0/7.0, f, 1e-9)

	// Monday 13:00 is half a day in
	f, ok = w.Fraction(time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.InDelta(t, 0.5/7.0, f, 1e-9)
}

func TestFractionRejectsOutsideWindow(t *testing.T) {
	w := testWindow(time.UTC)

	_, ok := w.Fraction(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	_, ok = w.Fraction(time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	// before the day band opens
	_, ok = w.Fraction(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestFractionStaysAlignedAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	w := testWindow(loc) // Mar 2 - Mar 8; spring-forward on Sunday Mar 8

	// Sunday 09:00 local is day index 6 regardless of the 23-hour day
	f, ok := w.Fraction(time.Date(2026, 3, 8, 9, 0, 0, 0, loc))
	require.True(t, ok)
	assert.InDelta(t, float64(6*720+120)/float64(7*720), f, 1e-9)
}

func TestTimeAtInvertsFractionWithSnap(t *testing.T) {
	w := testWindow(time.UTC)

	start := time.Date(2026, 3, 4, 10, 35, 0, 0, time.UTC)
	f, ok := w.Fraction(start)
	require.True(t, ok)

	assert.Equal(t, start, w.TimeAt(f, 5))

	// a jittery drop lands back on the 5-minute grid
	jitter := f + 1.4/float64(7*720)
	assert.Equal(t, start, w.TimeAt(jitter, 5))
}

func TestTimeAtClampsFraction(t *testing.T) {
	w := testWindow(time.UTC)

	assert.Equal(t, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), w.TimeAt(-0.2, 5))
	assert.Equal(t, time.Date(2026, 3, 8, 19, 0, 0, 0, time.UTC), w.TimeAt(1.5, 0))
}

func TestLayoutIsPureAndDeterministic(t *testing.T) {
	w := testWindow(time.UTC)
	lanes := []string{"STF-1", "STF-2"}
	sessions := []models.Session{
		sessionAt("SES-B", "STF-2", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 120),
		sessionAt("SES-A", "STF-1", time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), 60),
		sessionAt("SES-C", "STF-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 60),
	}

	first := Layout(sessions, w, lanes)
	second := Layout(sessions, w, lanes)
	assert.Equal(t, first, second)

	// ordered lane-first, then start
	require.Len(t, first, 3)
	assert.Equal(t, "SES-C", first[0].SessionID)
	assert.Equal(t, "SES-A", first[1].SessionID)
	assert.Equal(t, "SES-B", first[2].SessionID)
}

func TestLayoutOmitsCancelledForeignAndOffscreen(t *testing.T) {
	w := testWindow(time.UTC)
	cancelled := sessionAt("SES-X", "STF-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 60)
	cancelled.Status = string(domain.StatusCancelled)

	sessions := []models.Session{
		cancelled,
		sessionAt("SES-Y", "STF-9", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 60),
		sessionAt("SES-Z", "STF-1", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), 60),
	}

	assert.Empty(t, Layout(sessions, w, []string{"STF-1"}))
}

func TestLayoutStacksSameStartSessions(t *testing.T) {
	w := testWindow(time.UTC)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		sessionAt("SES-2", "STF-1", start, 60),
		sessionAt("SES-1", "STF-1", start, 90),
		sessionAt("SES-3", "STF-1", start, 30),
	}

	got := Layout(sessions, w, []string{"STF-1"})
	require.Len(t, got, 3)

	// bucket ordered by session id, indices dense from zero
	assert.Equal(t, "SES-1", got[0].SessionID)
	assert.Equal(t, 0, got[0].StackIndex)
	assert.Equal(t, 1, got[1].StackIndex)
	assert.Equal(t, 2, got[2].StackIndex)
	for _, g := range got {
		assert.Equal(t, 3, g.StackCount)
	}
}

func TestLayoutFloorsTinySessions(t *testing.T) {
	w := testWindow(time.UTC)
	sessions := []models.Session{
		sessionAt("SES-1", "STF-1", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 15),
	}

	got := Layout(sessions, w, []string{"STF-1"})
	require.Len(t, got, 1)
	assert.Equal(t, MinWidthFraction, got[0].WidthFraction)
}

func TestNowFraction(t *testing.T) {
	w := testWindow(time.UTC)

	f, visible := NowFraction(time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), w)
	require.True(t, visible)
	assert.InDelta(t, 0.5/7.0, f, 1e-9)

	_, visible = NowFraction(time.Date(2026, 5, 1, 13, 0, 0, 0, time.UTC), w)
	assert.False(t, visible)
}
