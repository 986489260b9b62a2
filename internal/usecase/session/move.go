package session

import (
	"context"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/conflict"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/timeline"
)

// MoveInput repositions a session from a drag gesture. The client sends
// either the drop fraction on the visible grid (with the grid's window) or
// an explicit start time. Duration is preserved; an optional staff id moves
// the session across lanes in the same gesture.
type MoveInput struct {
	SessionID string

	// fraction drop
	Fraction    *float64
	WindowStart time.Time
	HorizonDays int

	// explicit drop
	Start *time.Time

	StaffID string
}

// Move applies the drag. Validation runs inside the store lock; a rejected
// drop leaves the session exactly where it was.
func (u *Usecase) Move(ctx context.Context, in MoveInput) (*models.Session, error) {
	start, err := u.resolveStart(in)
	if err != nil {
		return nil, err
	}

	hours := domain.ClinicHours{Open: u.cfg.ClinicOpen, Close: u.cfg.ClinicClose}

	updated, err := u.repo.UpdateSession(ctx, in.SessionID, func(sess *models.Session, others []models.Session) error {
		if err := domain.CanReschedule(domain.Status(sess.Status)); err != nil {
			return err
		}

		staffID := sess.StaffID
		if in.StaffID != "" {
			staffID = in.StaffID
		}
		end := start.Add(sess.End.Sub(sess.Start))

		if u.cfg.IsClosedDay(start.Weekday()) {
			return httperr.ErrBusiness("closed_day")
		}
		if !domain.WithinClinicHours(hours, start, end) {
			return httperr.ErrBusiness("outside_clinic_hours")
		}

		if hit := conflict.FindForIdentity(
			start, end, others,
			staffID, sess.ClientID, sess.RoomID,
			sess.ID,
		); hit != nil {
			return *hit
		}

		if staffID != sess.StaffID {
			if err := domain.Reassign(sess, staffID); err != nil {
				return err
			}
		}
		return domain.Reschedule(sess, start, end)
	})
	if err != nil {
		return nil, err
	}

	if u.audit != nil {
		u.audit.Dispatch(audit.Event{
			Action:   "session.move",
			Entity:   "session",
			EntityID: updated.ID,
			Metadata: map[string]any{
				"start":    updated.Start,
				"staff_id": updated.StaffID,
			},
		})
	}
	return updated, nil
}

// resolveStart translates the gesture into a proposed start instant,
// snapping fraction drops to the configured minute grid.
func (u *Usecase) resolveStart(in MoveInput) (time.Time, error) {
	switch {
	case in.Start != nil:
		return in.Start.In(u.cfg.Location()), nil
	case in.Fraction != nil:
		if in.WindowStart.IsZero() || in.HorizonDays <= 0 {
			return time.Time{}, httperr.ErrBusiness("window_required")
		}
		w := timeline.Window{
			Start:        in.WindowStart.In(u.cfg.Location()),
			HorizonDays:  in.HorizonDays,
			DayStartHour: u.cfg.TimelineDayStartHour,
			DayMinutes:   u.cfg.TimelineDayMinutes,
		}
		return w.TimeAt(*in.Fraction, u.cfg.SnapMinutes), nil
	default:
		return time.Time{}, httperr.ErrBusiness("position_required")
	}
}
