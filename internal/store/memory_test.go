package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

var seedTime = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC) // Wednesday

func newTestStore() (*Memory, *clock.Manual) {
	clk := clock.NewManual(seedTime)
	m := NewMemory(clk)
	m.AddStaff(models.StaffAvailability{
		StaffID: "STF-1", Name: "Test RBT", Credential: "RBT",
		LoadMinutesWeek: 600, TargetMinutesWeek: 1200,
	})
	return m, clk
}

func draft(id string, start time.Time, minutes int) *models.Session {
	return &models.Session{
		ID: id, ClientID: "CLI-1", StaffID: "STF-1", ServiceCode: "97153",
		Start: start, End: start.Add(time.Duration(minutes) * time.Minute),
		Status: string(domain.StatusScheduled),
	}
}

func TestAppendSessionsIsAllOrNothing(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 60),
	}))

	// second batch: first draft is fine, second collides with SES-1
	err := m.AppendSessions(ctx, []*models.Session{
		draft("SES-2", seedTime.Add(3*time.Hour), 60),
		draft("SES-3", seedTime.Add(time.Hour), 60),
	})
	require.Error(t, err)

	var conflictErr domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "staff", conflictErr.Scope)

	sessions, err := m.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestAppendSessionsChecksDraftsAgainstEachOther(t *testing.T) {
	m, _ := newTestStore()

	err := m.AppendSessions(context.Background(), []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 90),
		draft("SES-2", seedTime.Add(2*time.Hour), 60),
	})
	require.Error(t, err)
}

func TestAppendSessionsAdjustsStaffLoad(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 120),
	}))

	staff, err := m.GetStaff(ctx, "STF-1")
	require.NoError(t, err)
	assert.Equal(t, 720, staff.LoadMinutesWeek)
}

func TestUpdateSessionCancelFreesLoad(t *testing.T) {
	m, clk := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 120),
	}))

	updated, err := m.UpdateSession(ctx, "SES-1", func(sess *models.Session, _ []models.Session) error {
		return domain.Cancel(sess, clk.Now())
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), updated.Status)
	require.NotNil(t, updated.CancelledAt)

	staff, err := m.GetStaff(ctx, "STF-1")
	require.NoError(t, err)
	assert.Equal(t, 600, staff.LoadMinutesWeek)
}

func TestUpdateSessionDiscardsOnMutationError(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 60),
	}))

	_, err := m.UpdateSession(ctx, "SES-1", func(sess *models.Session, _ []models.Session) error {
		sess.StaffID = "STF-ELSEWHERE"
		return httperr.ErrBusiness("nope")
	})
	require.Error(t, err)

	sess, err := m.GetSession(ctx, "SES-1")
	require.NoError(t, err)
	assert.Equal(t, "STF-1", sess.StaffID)
}

func TestUpdateSessionSnapshotExcludesSelf(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 60),
	}))

	_, err := m.UpdateSession(ctx, "SES-1", func(sess *models.Session, others []models.Session) error {
		assert.Empty(t, others)
		return nil
	})
	require.NoError(t, err)
}

func TestDebitAuthorizationClampsAtZero(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	m.PutAuthorization(models.AuthorizationBalance{
		ClientID: "CLI-1", AuthorizedMinutes: 500, UsedMinutes: 460, RemainingMinutes: 40,
	})

	require.NoError(t, m.DebitAuthorization(ctx, "CLI-1", 100))

	auth, err := m.GetAuthorization(ctx, "CLI-1")
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Zero(t, auth.RemainingMinutes)
	assert.Equal(t, 560, auth.UsedMinutes)
}

func TestGetAuthorizationMissingIsNilNil(t *testing.T) {
	m, _ := newTestStore()

	auth, err := m.GetAuthorization(context.Background(), "CLI-UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestListSessionsForRangeUsesOverlap(t *testing.T) {
	m, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, m.AppendSessions(ctx, []*models.Session{
		draft("SES-1", seedTime.Add(time.Hour), 60),
	}))

	// range starting exactly at session end excludes it
	got, err := m.ListSessionsForRange(ctx, seedTime.Add(2*time.Hour), seedTime.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = m.ListSessionsForRange(ctx, seedTime, seedTime.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
