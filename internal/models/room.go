package models

import "time"

type RoomType string

const (
	RoomTherapy    RoomType = "Therapy"
	RoomGroup      RoomType = "Group"
	RoomTelehealth RoomType = "Telehealth"
	RoomAdmin      RoomType = "Admin"
)

// Room is a bookable physical or virtual space at a practice location.
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Capacity int      `json:"capacity"`
	Type     RoomType `json:"type"`

	BookedHours    int `json:"booked_hours"`
	AvailableHours int `json:"available_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
