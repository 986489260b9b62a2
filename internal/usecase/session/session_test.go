package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	"github.com/spectrumpath/aba-scheduler/internal/config"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/store"
)

var testNow = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Timezone:             "UTC",
		ClinicOpen:           "08:00",
		ClinicClose:          "18:00",
		ClosedWeekdays:       []time.Weekday{time.Sunday},
		TimelineDayStartHour: 7,
		TimelineDayMinutes:   720,
		SnapMinutes:          5,
	}
}

func newFixture(t *testing.T) (*Usecase, *store.Memory) {
	t.Helper()
	clk := clock.NewManual(testNow)
	repo := store.NewMemory(clk)
	store.SeedPractice(repo)
	return New(repo, clk, testConfig(), nil), repo
}

func TestQuickCreateBooksAndDebits(t *testing.T) {
	uc, repo := newFixture(t)
	ctx := context.Background()

	sess, err := uc.QuickCreate(ctx, QuickCreateInput{
		ClientID:    "CLI-9081",
		StaffID:     "STF-112",
		ServiceCode: "97153",
		Date:        "2026-03-03",
		StartTime:   "09:00",
		DurationMin: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), sess.Status)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), sess.Start)
	// modality falls back to the client's recorded location
	assert.NotEmpty(t, sess.Modality)

	auth, err := repo.GetAuthorization(ctx, "CLI-9081")
	require.NoError(t, err)
	assert.Equal(t, 125, auth.RemainingMinutes)
}

func TestQuickCreateDefaultsDurationFromTemplate(t *testing.T) {
	uc, _ := newFixture(t)

	sess, err := uc.QuickCreate(context.Background(), QuickCreateInput{
		ClientID:    "CLI-1190",
		StaffID:     "STF-041",
		ServiceCode: "97156",
		Date:        "2026-03-03",
		StartTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 60, sess.DurationMinutes())
}

func TestQuickCreateValidationOrder(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	// RBT cannot deliver a BCBA-only code
	_, err := uc.QuickCreate(ctx, QuickCreateInput{
		ClientID: "CLI-087", StaffID: "STF-210", ServiceCode: "97155",
		Date: "2026-03-03", StartTime: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "credential_mismatch"))

	// Sunday
	_, err = uc.QuickCreate(ctx, QuickCreateInput{
		ClientID: "CLI-9081", StaffID: "STF-112", ServiceCode: "97153",
		Date: "2026-03-08", StartTime: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "closed_day"))

	// runs past close
	_, err = uc.QuickCreate(ctx, QuickCreateInput{
		ClientID: "CLI-9081", StaffID: "STF-112", ServiceCode: "97153",
		Date: "2026-03-03", StartTime: "17:30",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_clinic_hours"))

	// collides with the seeded Monday block
	_, err = uc.QuickCreate(ctx, QuickCreateInput{
		ClientID: "CLI-9081", StaffID: "STF-112", ServiceCode: "97153",
		Date: "2026-03-02", StartTime: "10:00",
	})
	var conflictErr domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestMoveByFractionSnapsToGrid(t *testing.T) {
	uc, repo := newFixture(t)
	ctx := context.Background()

	// Tuesday 13:02-ish as a fraction of the Mon-Sun, 07:00+720min grid
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fraction := float64(1*720+362) / float64(7*720)

	sess, err := uc.Move(ctx, MoveInput{
		SessionID:   "SES-100246",
		Fraction:    &fraction,
		WindowStart: windowStart,
		HorizonDays: 7,
	})
	require.NoError(t, err)

	// 362 minutes past 07:00 snaps to 13:00
	assert.Equal(t, time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC), sess.Start)
	// duration preserved
	assert.Equal(t, 90, sess.DurationMinutes())

	stored, err := repo.GetSession(ctx, "SES-100246")
	require.NoError(t, err)
	assert.True(t, stored.Start.Equal(sess.Start))
}

func TestMoveRejectedDropLeavesSessionInPlace(t *testing.T) {
	uc, repo := newFixture(t)
	ctx := context.Background()

	before, err := repo.GetSession(ctx, "SES-100246")
	require.NoError(t, err)

	// 17:30 + 90 min runs past clinic close
	start := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	_, err = uc.Move(ctx, MoveInput{
		SessionID: "SES-100246",
		Start:     &start,
	})
	require.Error(t, err)

	after, err := repo.GetSession(ctx, "SES-100246")
	require.NoError(t, err)
	assert.True(t, after.Start.Equal(before.Start))
	assert.Equal(t, before.StaffID, after.StaffID)
}

func TestMoveAcrossLanes(t *testing.T) {
	uc, repo := newFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	sess, err := uc.Move(ctx, MoveInput{
		SessionID: "SES-100246",
		Start:     &start,
		StaffID:   "STF-099",
	})
	require.NoError(t, err)
	assert.Equal(t, "STF-099", sess.StaffID)

	// load followed the session to the new lane
	staff, err := repo.GetStaff(ctx, "STF-099")
	require.NoError(t, err)
	assert.Equal(t, 1590, staff.LoadMinutesWeek)
}

func TestMoveRequiresAPosition(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.Move(context.Background(), MoveInput{SessionID: "SES-100246"})
	assert.True(t, httperr.IsBusiness(err, "position_required"))

	fraction := 0.5
	_, err = uc.Move(context.Background(), MoveInput{
		SessionID: "SES-100246",
		Fraction:  &fraction,
	})
	assert.True(t, httperr.IsBusiness(err, "window_required"))
}

func TestTransitionWalksTheLifecycle(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	sess, err := uc.Transition(ctx, "SES-100246", ActionStart)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), sess.Status)

	sess, err = uc.Transition(ctx, "SES-100246", ActionMarkPendingReview)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingValidation), sess.Status)

	sess, err = uc.Transition(ctx, "SES-100246", ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), sess.Status)
	require.NotNil(t, sess.CompletedAt)
	assert.Equal(t, testNow, *sess.CompletedAt)
}

func TestTransitionRejectsInvalidStates(t *testing.T) {
	uc, repo := newFixture(t)
	ctx := context.Background()

	_, err := uc.Transition(ctx, "SES-100246", ActionComplete)
	require.NoError(t, err)

	_, err = uc.Transition(ctx, "SES-100246", ActionStart)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Transition(ctx, "SES-100246", StatusAction("archive"))
	assert.True(t, httperr.IsBusiness(err, "unknown_action"))

	// the failed transitions left the session alone
	sess, err := repo.GetSession(ctx, "SES-100246")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), sess.Status)
}
