package composer

import (
	"context"

	"github.com/google/uuid"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	"github.com/spectrumpath/aba-scheduler/internal/catalog"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/recurrence"
)

// Debiter decrements a client's authorization balance when billable
// sessions are committed. The store-backed default is wired in main; tests
// swap in a recorder.
type Debiter interface {
	DebitAuthorization(ctx context.Context, clientID string, minutes int) error
}

// CommitResult reports what a successful commit produced.
type CommitResult struct {
	Sessions []models.Session `json:"sessions"`

	DebitedMinutes   int  `json:"debited_minutes"`
	RemainingMinutes *int `json:"remaining_minutes,omitempty"`

	ExceededAuthorization bool `json:"exceeded_authorization"`
}

// Commit validates the whole draft, expands the recurrence, books every
// occurrence atomically against the live schedule, debits the
// authorization for billable minutes, and retires the draft. Any conflict
// or validation failure leaves the schedule and the draft untouched.
func (cm *Composer) Commit(ctx context.Context, id string, debiter Debiter) (CommitResult, error) {
	d, err := cm.draft(id)
	if err != nil {
		return CommitResult{}, err
	}

	e, err := cm.buildEnv(ctx, d)
	if err != nil {
		return CommitResult{}, err
	}

	// 1. Every step must be complete, not just the ones visited.
	for _, st := range evaluate(d, e) {
		if !st.Complete {
			msg := st.Label + " step is incomplete."
			if len(st.Blocking) > 0 {
				msg = st.Blocking[0].Message
			}
			return CommitResult{}, httperr.ErrBusinessf("draft_incomplete", msg)
		}
	}

	start, end, ok := d.Window(e.loc)
	if !ok {
		return CommitResult{}, httperr.ErrBusiness("draft_incomplete")
	}

	// 2. Expand the series. A non-recurring draft yields one occurrence.
	var occurrences []recurrence.Occurrence
	if d.RecurrenceEnabled {
		occurrences = recurrence.Expand(start, end, d.RecurrenceWeekdays, d.RecurrenceOccurrences)
	} else {
		occurrences = []recurrence.Occurrence{{Start: start, End: end}}
	}

	evv := false
	if card, found := catalog.LocationByModality(d.Modality); found {
		evv = card.EVVRequired
	}

	drafts := make([]*models.Session, 0, len(occurrences))
	for _, occ := range occurrences {
		drafts = append(drafts, &models.Session{
			ID:          uuid.NewString(),
			ClientID:    d.ClientID,
			StaffID:     d.StaffID,
			RoomID:      d.RoomID,
			ServiceCode: d.ServiceCode,
			Start:       occ.Start,
			End:         occ.End,
			Modality:    d.Modality,
			Status:      string(domain.InitialStatus()),
			EVVRequired: evv,
			Notes:       d.Notes,
		})
	}

	// 3. All-or-nothing append; the store re-checks conflicts under its
	// lock so a racing commit cannot slip through.
	if err := cm.repo.AppendSessions(ctx, drafts); err != nil {
		return CommitResult{}, err
	}

	result := CommitResult{Sessions: make([]models.Session, 0, len(drafts))}
	for _, sess := range drafts {
		result.Sessions = append(result.Sessions, *sess)
	}

	// 4. Billable minutes debit the balance; overages beyond the advisory
	// warning clamp at zero and surface as exceeded.
	if e.service != nil && e.service.Billable && e.auth != nil {
		p := projectionFor(d, e)
		result.DebitedMinutes = p.ProjectedMinutes
		result.ExceededAuthorization = p.ExceedsAuthorization

		if debiter == nil {
			debiter = cm.repo
		}
		if err := debiter.DebitAuthorization(ctx, d.ClientID, p.ProjectedMinutes); err != nil {
			return CommitResult{}, err
		}

		if auth, err := cm.repo.GetAuthorization(ctx, d.ClientID); err == nil && auth != nil {
			remaining := auth.RemainingMinutes
			result.RemainingMinutes = &remaining
		}
	}

	// 5. Audit off the request path.
	if cm.audit != nil {
		cm.audit.Dispatch(audit.Event{
			Action:   "session.commit",
			Entity:   "session",
			EntityID: drafts[0].ID,
			Metadata: map[string]any{
				"draft_id":  d.ID,
				"client_id": d.ClientID,
				"staff_id":  d.StaffID,
				"sessions":  len(drafts),
				"minutes":   result.DebitedMinutes,
			},
		})
	}

	cm.mu.Lock()
	delete(cm.drafts, d.ID)
	cm.mu.Unlock()

	return result, nil
}
