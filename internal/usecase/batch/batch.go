package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/audit"
	"github.com/spectrumpath/aba-scheduler/internal/catalog"
	"github.com/spectrumpath/aba-scheduler/internal/clock"
	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/conflict"
)

// ======================================================
// BATCH OPERATIONS
// ======================================================

// Action is the operation applied to every selected session.
type Action string

const (
	ActionCancel   Action = "cancel"
	ActionMove     Action = "move"
	ActionReassign Action = "reassign"
)

// Input is a batch request: one action over a selection. Move shifts every
// session by the same offset; reassign moves them all to one staff lane.
type Input struct {
	Action     Action   `json:"action"`
	SessionIDs []string `json:"session_ids"`

	// move
	OffsetMinutes int `json:"offset_minutes,omitempty"`

	// reassign
	StaffID string `json:"staff_id,omitempty"`

	// cancel; echoed in the summary and the audit trail.
	Reason string `json:"reason,omitempty"`

	// Preview evaluates without applying.
	Preview bool `json:"preview,omitempty"`
}

// Blocked is one selected session the action could not apply to, with the
// reason shown to the user. Blocked items never abort the rest.
type Blocked struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// Result is the partial-success outcome of a batch.
type Result struct {
	Succeeded []models.Session `json:"succeeded"`
	Blocked   []Blocked        `json:"blocked"`

	// Summary is the dashboard toast line, e.g.
	// "2 sessions cancelled (clinic closure) · 1 skipped".
	Summary string `json:"summary"`
}

func summarize(action Action, reason string, succeeded, blocked int) string {
	verbs := map[Action]string{
		ActionCancel:   "cancelled",
		ActionMove:     "moved",
		ActionReassign: "reassigned",
	}
	noun := "sessions"
	if succeeded == 1 {
		noun = "session"
	}
	s := fmt.Sprintf("%d %s %s", succeeded, noun, verbs[action])
	if action == ActionCancel && reason != "" {
		s += fmt.Sprintf(" (%s)", reason)
	}
	if blocked > 0 {
		s += fmt.Sprintf(" · %d skipped", blocked)
	}
	return s
}

type Usecase struct {
	repo  domain.Repository
	clk   clock.Clock
	audit *audit.Dispatcher
}

func New(repo domain.Repository, clk clock.Clock, dispatcher *audit.Dispatcher) *Usecase {
	return &Usecase{repo: repo, clk: clk, audit: dispatcher}
}

// Apply runs the action over the selection. Each item is validated
// independently; eligible items apply even when others are blocked, and the
// result reports both sides.
func (u *Usecase) Apply(ctx context.Context, in Input) (Result, error) {
	if len(in.SessionIDs) == 0 {
		return Result{}, httperr.ErrBusiness("empty_selection")
	}

	var apply func(ctx context.Context, id string) (*models.Session, error)
	switch in.Action {
	case ActionCancel:
		apply = u.cancelOne
	case ActionMove:
		if in.OffsetMinutes == 0 {
			return Result{}, httperr.ErrBusiness("offset_required")
		}
		apply = func(ctx context.Context, id string) (*models.Session, error) {
			return u.moveOne(ctx, id, time.Duration(in.OffsetMinutes)*time.Minute)
		}
	case ActionReassign:
		if in.StaffID == "" {
			return Result{}, httperr.ErrBusiness("staff_required")
		}
		if _, err := u.repo.GetStaff(ctx, in.StaffID); err != nil {
			return Result{}, err
		}
		apply = func(ctx context.Context, id string) (*models.Session, error) {
			return u.reassignOne(ctx, id, in.StaffID)
		}
	default:
		return Result{}, httperr.ErrBusiness("unknown_action")
	}

	result := Result{
		Succeeded: []models.Session{},
		Blocked:   []Blocked{},
	}

	for _, id := range in.SessionIDs {
		updated, err := apply(ctx, id)
		if err != nil {
			reason, fatal := blockReason(err, id)
			if fatal {
				return Result{}, err
			}
			result.Blocked = append(result.Blocked, Blocked{SessionID: id, Reason: reason})
			continue
		}
		result.Succeeded = append(result.Succeeded, *updated)
	}
	result.Summary = summarize(in.Action, in.Reason, len(result.Succeeded), len(result.Blocked))

	if u.audit != nil && len(result.Succeeded) > 0 {
		meta := map[string]any{
			"requested": len(in.SessionIDs),
			"succeeded": len(result.Succeeded),
			"blocked":   len(result.Blocked),
		}
		if in.Reason != "" {
			meta["reason"] = in.Reason
		}
		u.audit.Dispatch(audit.Event{
			Action:   "session.batch." + string(in.Action),
			Entity:   "session",
			EntityID: result.Succeeded[0].ID,
			Metadata: meta,
		})
	}

	return result, nil
}

// blockReason renders a per-item error into the user-facing reason string.
// Context errors are fatal to the whole batch rather than per-item noise.
func blockReason(err error, sessionID string) (reason string, fatal bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", true
	}

	var conflictErr domain.ConflictError
	if errors.As(err, &conflictErr) {
		// Stored sessions reference catalog codes by construction; an
		// unknown code here is corrupted data, not bad input.
		svc := catalog.MustServiceByCode(conflictErr.With.ServiceCode)
		return fmt.Sprintf(
			"Overlaps a %s booking (%s, %s – %s).",
			conflictErr.Scope,
			svc.Label,
			conflictErr.With.Start.Format("Jan 2 3:04pm"),
			conflictErr.With.End.Format("3:04pm"),
		), false
	}

	if be, ok := httperr.AsBusiness(err); ok {
		switch be.Code {
		case "already_terminal":
			return fmt.Sprintf("%s is already completed or cancelled.", sessionID), false
		case "already_assigned":
			return fmt.Sprintf("%s is already assigned to that staff member.", sessionID), false
		case "session_not_found":
			return fmt.Sprintf("%s no longer exists.", sessionID), false
		}
		if be.Message != "" {
			return be.Message, false
		}
		return be.Code, false
	}
	return err.Error(), false
}

// Preview evaluates the batch against the current schedule without writing
// anything: same per-item outcomes Apply would report, sessions shown in
// their would-be state. Move previews check against the pre-move schedule,
// so a preview can be slightly stricter than the ordered apply.
func (u *Usecase) Preview(ctx context.Context, in Input) (Result, error) {
	if len(in.SessionIDs) == 0 {
		return Result{}, httperr.ErrBusiness("empty_selection")
	}
	if in.Action == ActionMove && in.OffsetMinutes == 0 {
		return Result{}, httperr.ErrBusiness("offset_required")
	}
	if in.Action == ActionReassign {
		if in.StaffID == "" {
			return Result{}, httperr.ErrBusiness("staff_required")
		}
		if _, err := u.repo.GetStaff(ctx, in.StaffID); err != nil {
			return Result{}, err
		}
	}

	all, err := u.repo.ListSessions(ctx)
	if err != nil {
		return Result{}, err
	}
	byID := make(map[string]models.Session, len(all))
	for _, sess := range all {
		byID[sess.ID] = sess
	}

	result := Result{
		Succeeded: []models.Session{},
		Blocked:   []Blocked{},
	}

	for _, id := range in.SessionIDs {
		sess, ok := byID[id]
		if !ok {
			result.Blocked = append(result.Blocked, Blocked{
				SessionID: id,
				Reason:    fmt.Sprintf("%s no longer exists.", id),
			})
			continue
		}

		others := make([]models.Session, 0, len(all)-1)
		for _, other := range all {
			if other.ID != id {
				others = append(others, other)
			}
		}

		next := sess
		var itemErr error
		switch in.Action {
		case ActionCancel:
			itemErr = domain.Cancel(&next, u.clk.Now())
		case ActionMove:
			itemErr = u.previewMove(&next, others, time.Duration(in.OffsetMinutes)*time.Minute)
		case ActionReassign:
			itemErr = u.previewReassign(&next, others, in.StaffID)
		default:
			return Result{}, httperr.ErrBusiness("unknown_action")
		}

		if itemErr != nil {
			reason, fatal := blockReason(itemErr, id)
			if fatal {
				return Result{}, itemErr
			}
			result.Blocked = append(result.Blocked, Blocked{SessionID: id, Reason: reason})
			continue
		}
		result.Succeeded = append(result.Succeeded, next)
	}
	result.Summary = summarize(in.Action, in.Reason, len(result.Succeeded), len(result.Blocked))

	return result, nil
}

func (u *Usecase) previewMove(sess *models.Session, others []models.Session, offset time.Duration) error {
	if err := domain.CanReschedule(domain.Status(sess.Status)); err != nil {
		return err
	}

	start := sess.Start.Add(offset)
	end := sess.End.Add(offset)
	if hit := conflict.FindForIdentity(
		start, end, others,
		sess.StaffID, sess.ClientID, sess.RoomID,
		sess.ID,
	); hit != nil {
		return *hit
	}
	return domain.Reschedule(sess, start, end)
}

func (u *Usecase) previewReassign(sess *models.Session, others []models.Session, staffID string) error {
	if err := domain.CanReschedule(domain.Status(sess.Status)); err != nil {
		return err
	}
	if sess.StaffID == staffID {
		return httperr.ErrBusiness("already_assigned")
	}
	if hit := conflict.Find(sess.Start, sess.End, others, conflict.SameStaff(staffID)); hit != nil {
		return domain.ConflictError{Scope: "staff", With: *hit}
	}
	return domain.Reassign(sess, staffID)
}

func (u *Usecase) cancelOne(ctx context.Context, id string) (*models.Session, error) {
	return u.repo.UpdateSession(ctx, id, func(sess *models.Session, _ []models.Session) error {
		return domain.Cancel(sess, u.clk.Now())
	})
}

// moveOne shifts one session by the offset, re-running the conflict check
// against the schedule snapshot inside the store lock.
func (u *Usecase) moveOne(ctx context.Context, id string, offset time.Duration) (*models.Session, error) {
	return u.repo.UpdateSession(ctx, id, func(sess *models.Session, others []models.Session) error {
		if err := domain.CanReschedule(domain.Status(sess.Status)); err != nil {
			return err
		}

		start := sess.Start.Add(offset)
		end := sess.End.Add(offset)

		if hit := conflict.FindForIdentity(
			start, end, others,
			sess.StaffID, sess.ClientID, sess.RoomID,
			sess.ID,
		); hit != nil {
			return *hit
		}
		return domain.Reschedule(sess, start, end)
	})
}

func (u *Usecase) reassignOne(ctx context.Context, id string, staffID string) (*models.Session, error) {
	return u.repo.UpdateSession(ctx, id, func(sess *models.Session, others []models.Session) error {
		if err := domain.CanReschedule(domain.Status(sess.Status)); err != nil {
			return err
		}
		if sess.StaffID == staffID {
			return httperr.ErrBusiness("already_assigned")
		}
		if hit := conflict.Find(sess.Start, sess.End, others, conflict.SameStaff(staffID)); hit != nil {
			return domain.ConflictError{Scope: "staff", With: *hit}
		}
		return domain.Reassign(sess, staffID)
	})
}
