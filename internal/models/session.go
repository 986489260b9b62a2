package models

import "time"

// Modality is the care setting a session is delivered in.
type Modality string

const (
	ModalityCenter     Modality = "Center"
	ModalityHome       Modality = "Home"
	ModalitySchool     Modality = "School"
	ModalityTelehealth Modality = "Telehealth"
)

// Session is the scheduled unit of care. It is owned by the session store
// and referenced by client/staff/room entities via id. Sessions are never
// deleted, only transitioned to cancelled.
type Session struct {
	ID string `json:"id"`

	ClientID    string `json:"client_id"`
	StaffID     string `json:"staff_id"`
	RoomID      string `json:"room_id,omitempty"`
	ServiceCode string `json:"service_code"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Modality Modality `json:"modality"`
	Status   string   `json:"status"`

	EVVRequired bool   `json:"evv_required"`
	Notes       string `json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMinutes returns the session length in whole minutes.
func (s Session) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}
