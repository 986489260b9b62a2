package session

import (
	"context"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// StatusAction is a single-session lifecycle transition requested from the
// session detail panel.
type StatusAction string

const (
	ActionStart             StatusAction = "start"
	ActionMarkPendingReview StatusAction = "pending_validation"
	ActionComplete          StatusAction = "complete"
	ActionCancel            StatusAction = "cancel"
)

// Transition applies one lifecycle action. Guards live in the domain
// package; an invalid transition leaves the session untouched.
func (u *Usecase) Transition(ctx context.Context, id string, action StatusAction) (*models.Session, error) {
	var mutate func(sess *models.Session) error
	switch action {
	case ActionStart:
		mutate = domain.Start
	case ActionMarkPendingReview:
		mutate = domain.MarkPendingValidation
	case ActionComplete:
		mutate = func(sess *models.Session) error {
			return domain.Complete(sess, u.clk.Now())
		}
	case ActionCancel:
		mutate = func(sess *models.Session) error {
			return domain.Cancel(sess, u.clk.Now())
		}
	default:
		return nil, httperr.ErrBusiness("unknown_action")
	}

	updated, err := u.repo.UpdateSession(ctx, id, func(sess *models.Session, _ []models.Session) error {
		return mutate(sess)
	})
	if err != nil {
		return nil, err
	}

	if u.audit != nil {
		u.audit.Dispatch(audit.Event{
			Action:   "session." + string(action),
			Entity:   "session",
			EntityID: updated.ID,
			Metadata: map[string]any{"status": updated.Status},
		})
	}
	return updated, nil
}
