package models

import "time"

// UtilizationBand classifies a staff member's weekly booking level.
type UtilizationBand string

const (
	BandUnderbooked UtilizationBand = "Underbooked"
	BandHealthy     UtilizationBand = "Healthy"
	BandOverbooked  UtilizationBand = "Overbooked"
)

// StaffAvailability is a staff member plus their weekly capacity picture.
// Load is mutated whenever a session is assigned to or removed from them.
type StaffAvailability struct {
	StaffID    string `json:"staff_id"`
	Name       string `json:"name"`
	Credential string `json:"credential"`
	Location   string `json:"location"`

	LoadMinutesWeek   int `json:"load_minutes_week"`
	TargetMinutesWeek int `json:"target_minutes_week"`

	TravelBufferMinutes int  `json:"travel_buffer_minutes"`
	EVVRequired         bool `json:"evv_required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UtilizationRatio is load over target. Target of zero reads as fully booked.
func (s StaffAvailability) UtilizationRatio() float64 {
	if s.TargetMinutesWeek <= 0 {
		return 1
	}
	return float64(s.LoadMinutesWeek) / float64(s.TargetMinutesWeek)
}

// Band buckets the utilization ratio: <75% underbooked, 75-95% healthy,
// >95% overbooked.
func (s StaffAvailability) Band() UtilizationBand {
	switch ratio := s.UtilizationRatio(); {
	case ratio < 0.75:
		return BandUnderbooked
	case ratio > 0.95:
		return BandOverbooked
	default:
		return BandHealthy
	}
}
