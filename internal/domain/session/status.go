package session

import "github.com/spectrumpath/aba-scheduler/internal/httperr"

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusScheduled         Status = "Scheduled"
	StatusInProgress        Status = "InProgress"
	StatusCompleted         Status = "Completed"
	StatusPendingValidation Status = "PendingValidation"
	StatusCancelled         Status = "Cancelled"
)

// Terminal reports whether the status accepts no further transitions.
func Terminal(current Status) bool {
	return current == StatusCompleted || current == StatusCancelled
}

// Active statuses occupy calendar time and participate in conflict checks.
func Active(current Status) bool {
	return current != StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkPendingValidation(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if Terminal(current) {
		return httperr.ErrBusiness("already_terminal")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusInProgress && current != StatusPendingValidation {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if Terminal(current) {
		return httperr.ErrBusiness("already_terminal")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
