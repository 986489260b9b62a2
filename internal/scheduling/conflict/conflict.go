package conflict

import (
	"time"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Predicate scopes a conflict check to sessions sharing an identity with
// the candidate (same staff, same client, or same room).
type Predicate func(existing models.Session) bool

func SameStaff(staffID string) Predicate {
	return func(existing models.Session) bool {
		return staffID != "" && existing.StaffID == staffID
	}
}

func SameClient(clientID string) Predicate {
	return func(existing models.Session) bool {
		return clientID != "" && existing.ClientID == clientID
	}
}

func SameRoom(roomID string) Predicate {
	return func(existing models.Session) bool {
		return roomID != "" && existing.RoomID == roomID
	}
}

// Overlaps applies half-open interval semantics: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1. A session ending exactly when another
// starts does not conflict.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// Find returns the first session overlapping the candidate window among
// those matching the predicate. Cancelled sessions never conflict. One
// conflicting session is enough for user-facing messaging; callers that
// need more re-run with a narrower scope.
func Find(start, end time.Time, existing []models.Session, match Predicate) *models.Session {
	for i := range existing {
		other := existing[i]
		if !domain.Active(domain.Status(other.Status)) {
			continue
		}
		if !match(other) {
			continue
		}
		if Overlaps(start, end, other.Start, other.End) {
			return &other
		}
	}
	return nil
}

// FindForIdentity checks the staff, client, and room scopes independently
// and returns the first hit with its scope name. Any one of them blocks.
func FindForIdentity(start, end time.Time, existing []models.Session, staffID, clientID, roomID string, excludeID string) *domain.ConflictError {
	pool := existing
	if excludeID != "" {
		pool = make([]models.Session, 0, len(existing))
		for _, other := range existing {
			if other.ID != excludeID {
				pool = append(pool, other)
			}
		}
	}

	if hit := Find(start, end, pool, SameStaff(staffID)); hit != nil {
		return &domain.ConflictError{Scope: "staff", With: *hit}
	}
	if hit := Find(start, end, pool, SameClient(clientID)); hit != nil {
		return &domain.ConflictError{Scope: "client", With: *hit}
	}
	if hit := Find(start, end, pool, SameRoom(roomID)); hit != nil {
		return &domain.ConflictError{Scope: "room", With: *hit}
	}
	return nil
}
