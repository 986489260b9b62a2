package models

import "time"

type ClientStatus string

const (
	ClientActive   ClientStatus = "Active"
	ClientWaitlist ClientStatus = "Waitlist"
	ClientPaused   ClientStatus = "Paused"
)

// Client is a therapy client on the practice roster. Care-team membership
// is tracked by explicit staff ids, not by name matching.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`

	Location    string `json:"location"`
	ModalityMix string `json:"modality_mix"`

	HoursPrescribedWeekly int `json:"hours_prescribed_weekly"`
	HoursDeliveredWeekly  int `json:"hours_delivered_weekly"`

	CareTeamStaffIDs []string `json:"care_team_staff_ids"`

	Status ClientStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OnCareTeam reports whether the staff member is part of the client's
// recorded care team.
func (c Client) OnCareTeam(staffID string) bool {
	for _, id := range c.CareTeamStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
