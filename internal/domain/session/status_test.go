package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCancelled))
	assert.False(t, Terminal(StatusScheduled))
	assert.False(t, Terminal(StatusPendingValidation))
}

func TestCancelledIsOnlyInactiveStatus(t *testing.T) {
	assert.False(t, Active(StatusCancelled))
	assert.True(t, Active(StatusCompleted))
	assert.True(t, Active(StatusScheduled))
	assert.True(t, Active(StatusInProgress))
}

func TestCancelTransition(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	sess := &models.Session{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(sess, now))
	assert.Equal(t, string(StatusCancelled), sess.Status)
	require.NotNil(t, sess.CancelledAt)
	assert.Equal(t, now, *sess.CancelledAt)

	// cancelling twice is rejected
	err := Cancel(sess, now)
	assert.True(t, httperr.IsBusiness(err, "already_terminal"))
}

func TestCompleteTransition(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	sess := &models.Session{Status: string(StatusPendingValidation)}
	require.NoError(t, Complete(sess, now))
	assert.Equal(t, string(StatusCompleted), sess.Status)

	cancelled := &models.Session{Status: string(StatusCancelled)}
	err := Complete(cancelled, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestReschedulePreservesDurationWhenEndOmitted(t *testing.T) {
	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	sess := &models.Session{
		Status: string(StatusScheduled),
		Start:  start,
		End:    start.Add(90 * time.Minute),
	}

	newStart := start.Add(3 * time.Hour)
	require.NoError(t, Reschedule(sess, newStart, time.Time{}))
	assert.Equal(t, newStart, sess.Start)
	assert.Equal(t, newStart.Add(90*time.Minute), sess.End)
}

func TestWithinClinicHours(t *testing.T) {
	hours := ClinicHours{Open: "08:00", Close: "18:00"}
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	ok := WithinClinicHours(hours, day.Add(8*time.Hour), day.Add(10*time.Hour))
	assert.True(t, ok)

	// exact close boundary is allowed
	ok = WithinClinicHours(hours, day.Add(16*time.Hour), day.Add(18*time.Hour))
	assert.True(t, ok)

	ok = WithinClinicHours(hours, day.Add(7*time.Hour), day.Add(9*time.Hour))
	assert.False(t, ok)

	ok = WithinClinicHours(hours, day.Add(17*time.Hour), day.Add(19*time.Hour))
	assert.False(t, ok)
}
