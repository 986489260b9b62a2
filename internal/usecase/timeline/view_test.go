package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	"github.com/spectrumpath/aba-scheduler/internal/store"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // Monday mid-morning

func newFixture(t *testing.T) *Usecase {
	t.Helper()
	clk := clock.NewManual(testNow)
	repo := store.NewMemory(clk)
	store.SeedPractice(repo)

	cfg := &config.Config{
		Timezone:             "UTC",
		ClinicOpen:           "08:00",
		ClinicClose:          "18:00",
		ClosedWeekdays:       []time.Weekday{time.Sunday},
		TimelineDayStartHour: 7,
		TimelineDayMinutes:   720,
		SnapMinutes:          5,
	}
	return New(repo, clk, cfg)
}

func TestBuildDefaultsToCurrentWeek(t *testing.T) {
	uc := newFixture(t)

	view, err := uc.Build(context.Background(), "", 0, nil)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), view.WindowStart)
	assert.Equal(t, 7, view.HorizonDays)
	assert.Len(t, view.Lanes, 5)

	// all three seeded sessions land in the week
	assert.Len(t, view.Geometries, 3)
	assert.Len(t, view.Sessions, 3)

	// Monday 10:00 is on screen
	require.NotNil(t, view.NowFraction)
	assert.InDelta(t, float64(180)/float64(7*720), *view.NowFraction, 1e-9)
}

func TestBuildFiltersLanes(t *testing.T) {
	uc := newFixture(t)

	view, err := uc.Build(context.Background(), "2026-03-02", 7, []string{"STF-112"})
	require.NoError(t, err)

	require.Len(t, view.Lanes, 1)
	assert.Equal(t, "STF-112", view.Lanes[0].StaffID)

	require.Len(t, view.Geometries, 1)
	assert.Equal(t, "SES-100245", view.Geometries[0].SessionID)
}

func TestBuildOffWeekHasNoNowMarker(t *testing.T) {
	uc := newFixture(t)

	view, err := uc.Build(context.Background(), "2026-03-09", 7, nil)
	require.NoError(t, err)

	assert.Nil(t, view.NowFraction)
	assert.Empty(t, view.Geometries)
}

func TestBuildRejectsBadDate(t *testing.T) {
	uc := newFixture(t)

	_, err := uc.Build(context.Background(), "03/02/2026", 7, nil)
	require.Error(t, err)
}
