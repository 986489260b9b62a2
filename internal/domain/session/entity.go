package session

import (
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(sess *models.Session, now time.Time) error {
	if err := CanCancel(Status(sess.Status)); err != nil {
		return err
	}

	sess.Status = string(StatusCancelled)
	sess.CancelledAt = &now
	return nil
}

func Start(sess *models.Session) error {
	if err := CanStart(Status(sess.Status)); err != nil {
		return err
	}

	sess.Status = string(StatusInProgress)
	return nil
}

// MarkPendingValidation parks a delivered session until its EVV or note
// requirements clear.
func MarkPendingValidation(sess *models.Session) error {
	if err := CanMarkPendingValidation(Status(sess.Status)); err != nil {
		return err
	}

	sess.Status = string(StatusPendingValidation)
	return nil
}

func Complete(sess *models.Session, now time.Time) error {
	if err := CanComplete(Status(sess.Status)); err != nil {
		return err
	}

	sess.Status = string(StatusCompleted)
	sess.CompletedAt = &now
	return nil
}

// Reschedule shifts the session window, preserving duration when end is zero.
func Reschedule(sess *models.Session, start, end time.Time) error {
	if err := CanReschedule(Status(sess.Status)); err != nil {
		return err
	}

	if end.IsZero() {
		end = start.Add(sess.End.Sub(sess.Start))
	}
	sess.Start = start
	sess.End = end
	return nil
}

// Reassign moves the session to another staff lane.
func Reassign(sess *models.Session, staffID string) error {
	if err := CanReschedule(Status(sess.Status)); err != nil {
		return err
	}

	sess.StaffID = staffID
	return nil
}
