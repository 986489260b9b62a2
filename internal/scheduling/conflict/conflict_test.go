package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func session(id, staffID, clientID, roomID string, start, end time.Time) models.Session {
	return models.Session{
		ID: id, StaffID: staffID, ClientID: clientID, RoomID: roomID,
		Start: start, End: end,
		Status: string(domain.StatusScheduled),
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a1, a2 := at(9, 0), at(10, 0)
	b1, b2 := at(9, 30), at(11, 0)

	assert.True(t, Overlaps(a1, a2, b1, b2))
	assert.True(t, Overlaps(b1, b2, a1, a2))
}

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	// back-to-back sessions share an instant but not time
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))

	// one minute of overlap is enough
	assert.True(t, Overlaps(at(9, 0), at(10, 1), at(10, 0), at(11, 0)))
}

func TestFindSkipsCancelledSessions(t *testing.T) {
	cancelled := session("SES-1", "STF-1", "CLI-1", "", at(9, 0), at(10, 0))
	cancelled.Status = string(domain.StatusCancelled)

	hit := Find(at(9, 0), at(10, 0), []models.Session{cancelled}, SameStaff("STF-1"))
	assert.Nil(t, hit)
}

func TestFindIgnoresOtherIdentities(t *testing.T) {
	existing := []models.Session{
		session("SES-1", "STF-1", "CLI-1", "", at(9, 0), at(10, 0)),
	}

	assert.Nil(t, Find(at(9, 0), at(10, 0), existing, SameStaff("STF-2")))
	assert.NotNil(t, Find(at(9, 0), at(10, 0), existing, SameStaff("STF-1")))
}

func TestEmptyIdentityNeverMatches(t *testing.T) {
	existing := []models.Session{
		session("SES-1", "STF-1", "CLI-1", "", at(9, 0), at(10, 0)),
	}
	// sessions without a room must not conflict on the empty room id
	assert.Nil(t, Find(at(9, 0), at(10, 0), existing, SameRoom("")))
}

func TestFindForIdentityReportsScope(t *testing.T) {
	existing := []models.Session{
		session("SES-1", "STF-1", "CLI-1", "RM-1", at(9, 0), at(10, 0)),
		session("SES-2", "STF-2", "CLI-2", "RM-2", at(9, 0), at(10, 0)),
	}

	err := FindForIdentity(at(9, 30), at(10, 30), existing, "STF-9", "CLI-2", "", "")
	require.NotNil(t, err)
	assert.Equal(t, "client", err.Scope)
	assert.Equal(t, "SES-2", err.With.ID)

	err = FindForIdentity(at(9, 30), at(10, 30), existing, "STF-9", "CLI-9", "RM-1", "")
	require.NotNil(t, err)
	assert.Equal(t, "room", err.Scope)
}

func TestFindForIdentityExcludesSelf(t *testing.T) {
	existing := []models.Session{
		session("SES-1", "STF-1", "CLI-1", "", at(9, 0), at(10, 0)),
	}

	// a session being moved must not conflict with its own old slot
	err := FindForIdentity(at(9, 30), at(10, 30), existing, "STF-1", "CLI-1", "", "SES-1")
	assert.Nil(t, err)
}
