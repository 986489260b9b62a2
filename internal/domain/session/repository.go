package session

import (
	"context"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Repository is the collaborator surface the scheduling core needs: the
// roster and authorization providers are read-only, the session store is
// append/update only (no delete).
type Repository interface {
	// -------- Roster --------
	ListClients(ctx context.Context) ([]models.Client, error)

	GetClient(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	ListStaff(ctx context.Context) ([]models.StaffAvailability, error)

	GetStaff(
		ctx context.Context,
		id string,
	) (*models.StaffAvailability, error)

	ListRooms(ctx context.Context) ([]models.Room, error)

	GetRoom(
		ctx context.Context,
		id string,
	) (*models.Room, error)

	// -------- Authorization --------

	// GetAuthorization returns (nil, nil) when the client has no active
	// authorization; scheduling then proceeds non-billable.
	GetAuthorization(
		ctx context.Context,
		clientID string,
	) (*models.AuthorizationBalance, error)

	DebitAuthorization(
		ctx context.Context,
		clientID string,
		minutes int,
	) error

	// -------- Sessions --------
	ListSessions(ctx context.Context) ([]models.Session, error)

	ListSessionsForRange(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Session, error)

	GetSession(
		ctx context.Context,
		id string,
	) (*models.Session, error)

	// AppendSessions conflict-checks every draft against the live schedule
	// and the other drafts under the store lock, then appends all of them.
	// A ConflictError aborts the whole append.
	AppendSessions(
		ctx context.Context,
		drafts []*models.Session,
	) error

	// UpdateSession applies mutate to a copy of the stored session under the
	// store lock. The snapshot of all other sessions lets the mutation run
	// conflict checks atomically with the write. A non-nil error discards
	// the mutation.
	UpdateSession(
		ctx context.Context,
		id string,
		mutate func(sess *models.Session, others []models.Session) error,
	) (*models.Session, error)

	// -------- Audit --------
	AppendAuditLog(
		ctx context.Context,
		entry *models.AuditLog,
	) error

	ListAuditLogs(ctx context.Context) ([]models.AuditLog, error)
}
