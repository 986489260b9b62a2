package session

import (
	"fmt"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// ConflictError reports an overlapping booking for the same staff, client,
// or room. It carries the first conflicting session for user-facing
// messaging.
type ConflictError struct {
	Scope string // "staff", "client", or "room"
	With  models.Session
}

func (e ConflictError) Error() string {
	return fmt.Sprintf(
		"time_conflict: %s overlap with session %s (%s – %s)",
		e.Scope,
		e.With.ID,
		e.With.Start.Format("Jan 2 3:04pm"),
		e.With.End.Format("3:04pm"),
	)
}
