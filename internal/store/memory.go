package store

import (
	"context"
	"sync"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/clock"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/conflict"
)

// Memory is the in-process repository behind the scheduling core. All
// session mutations run under one lock so conflict check-then-act is atomic:
// two near-simultaneous commits cannot both pass checks against a stale
// snapshot.
type Memory struct {
	mu sync.RWMutex

	clients []models.Client
	staff   []models.StaffAvailability
	rooms   []models.Room
	auths   map[string]models.AuthorizationBalance

	sessions []models.Session
	audit    []models.AuditLog

	clk clock.Clock
}

var _ domain.Repository = (*Memory)(nil)

func NewMemory(clk clock.Clock) *Memory {
	return &Memory{
		auths: make(map[string]models.AuthorizationBalance),
		clk:   clk,
	}
}

// --------------------------------------------------
// Roster
// --------------------------------------------------

func (m *Memory) ListClients(ctx context.Context) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Client(nil), m.clients...), nil
}

func (m *Memory) GetClient(ctx context.Context, id string) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.clients {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("client_not_found")
}

func (m *Memory) ListStaff(ctx context.Context) ([]models.StaffAvailability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.StaffAvailability(nil), m.staff...), nil
}

func (m *Memory) GetStaff(ctx context.Context, id string) (*models.StaffAvailability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.staff {
		if s.StaffID == id {
			out := s
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("staff_not_found")
}

func (m *Memory) ListRooms(ctx context.Context) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Room(nil), m.rooms...), nil
}

func (m *Memory) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.rooms {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("room_not_found")
}

// --------------------------------------------------
// Authorizations
// --------------------------------------------------

func (m *Memory) GetAuthorization(ctx context.Context, clientID string) (*models.AuthorizationBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	auth, ok := m.auths[clientID]
	if !ok {
		return nil, nil
	}
	out := auth
	return &out, nil
}

func (m *Memory) DebitAuthorization(ctx context.Context, clientID string, minutes int) error {
	if minutes <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	auth, ok := m.auths[clientID]
	if !ok {
		return httperr.ErrBusiness("authorization_not_found")
	}

	auth.UsedMinutes += minutes
	auth.RemainingMinutes -= minutes
	// Remaining stays within [0, authorized] even when an overage was
	// committed past the advisory warning.
	if auth.RemainingMinutes < 0 {
		auth.RemainingMinutes = 0
	}
	m.auths[clientID] = auth
	return nil
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (m *Memory) ListSessions(ctx context.Context) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Session(nil), m.sessions...), nil
}

func (m *Memory) ListSessionsForRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Session
	for _, sess := range m.sessions {
		if conflict.Overlaps(sess.Start, sess.End, from, to) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (m *Memory) GetSession(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sess := range m.sessions {
		if sess.ID == id {
			out := sess
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("session_not_found")
}

func (m *Memory) AppendSessions(ctx context.Context, drafts []*models.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check every draft against the live schedule plus the drafts accepted
	// so far, then append all of them. A mid-batch conflict leaves the
	// store untouched.
	pool := append([]models.Session(nil), m.sessions...)
	for _, draft := range drafts {
		if conflictErr := conflict.FindForIdentity(
			draft.Start, draft.End, pool,
			draft.StaffID, draft.ClientID, draft.RoomID,
			"",
		); conflictErr != nil {
			return *conflictErr
		}
		pool = append(pool, *draft)
	}

	now := m.clk.Now()
	for _, draft := range drafts {
		draft.CreatedAt = now
		draft.UpdatedAt = now
		m.sessions = append(m.sessions, *draft)
		m.adjustLoadLocked(draft.StaffID, activeMinutes(*draft))
	}
	return nil
}

func (m *Memory) UpdateSession(
	ctx context.Context,
	id string,
	mutate func(sess *models.Session, others []models.Session) error,
) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	others := make([]models.Session, 0, len(m.sessions)-1)
	for i, sess := range m.sessions {
		if i != idx {
			others = append(others, sess)
		}
	}

	prev := m.sessions[idx]
	next := prev
	if err := mutate(&next, others); err != nil {
		return nil, err
	}

	next.UpdatedAt = m.clk.Now()
	m.sessions[idx] = next

	m.adjustLoadLocked(prev.StaffID, -activeMinutes(prev))
	m.adjustLoadLocked(next.StaffID, activeMinutes(next))

	out := next
	return &out, nil
}

// activeMinutes is the load a session contributes to its staff lane.
// Cancelled sessions free the time back up.
func activeMinutes(sess models.Session) int {
	if !domain.Active(domain.Status(sess.Status)) {
		return 0
	}
	return sess.DurationMinutes()
}

func (m *Memory) adjustLoadLocked(staffID string, deltaMinutes int) {
	if staffID == "" || deltaMinutes == 0 {
		return
	}
	for i := range m.staff {
		if m.staff[i].StaffID == staffID {
			m.staff[i].LoadMinutesWeek += deltaMinutes
			if m.staff[i].LoadMinutesWeek < 0 {
				m.staff[i].LoadMinutesWeek = 0
			}
			m.staff[i].UpdatedAt = m.clk.Now()
			return
		}
	}
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (m *Memory) AppendAuditLog(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.CreatedAt = m.clk.Now()
	m.audit = append(m.audit, *entry)
	return nil
}

func (m *Memory) ListAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.AuditLog(nil), m.audit...), nil
}
