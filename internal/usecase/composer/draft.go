package composer

import (
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// ======================================================
// STEPS
// ======================================================

// Step is one stage of the appointment composer. Steps are linear and
// navigable forward/back with no skipping.
type Step int

const (
	StepClient Step = iota
	StepService
	StepSchedule
	StepStaff
	StepLocation
	StepRecurrence
	StepReview
)

var stepIDs = [...]string{"client", "service", "schedule", "staff", "location", "recurrence", "review"}

var stepLabels = [...]string{
	"Client",
	"Intent & service",
	"When",
	"Team",
	"Location",
	"Recurrence",
	"Review & confirm",
}

func (s Step) ID() string {
	return stepIDs[s]
}

func (s Step) Label() string {
	return stepLabels[s]
}

const lastStep = StepReview

// ======================================================
// DRAFT
// ======================================================

// Draft accumulates the composer's selections. Back-navigation never clears
// downstream fields: the user can move back and forth without losing
// entered data.
type Draft struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	ClientID    string        `json:"client_id,omitempty"`
	Intent      models.Intent `json:"intent,omitempty"`
	ServiceCode string        `json:"service_code,omitempty"`

	Date        string `json:"date,omitempty"`       // "2006-01-02"
	StartTime   string `json:"start_time,omitempty"` // "15:04"
	DurationMin int    `json:"duration_min,omitempty"`

	StaffID string `json:"staff_id,omitempty"`

	Modality models.Modality `json:"modality,omitempty"`
	RoomID   string          `json:"room_id,omitempty"`

	RecurrenceEnabled     bool           `json:"recurrence_enabled"`
	RecurrenceWeekdays    []time.Weekday `json:"recurrence_weekdays,omitempty"`
	RecurrenceOccurrences int            `json:"recurrence_occurrences,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Window resolves the draft's proposed session window in the given
// location. Zero times when the schedule step is not filled in yet.
func (d Draft) Window(loc *time.Location) (start, end time.Time, ok bool) {
	if d.Date == "" || d.StartTime == "" || d.DurationMin <= 0 {
		return time.Time{}, time.Time{}, false
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", d.Date+" "+d.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return t, t.Add(time.Duration(d.DurationMin) * time.Minute), true
}

// Patch is an idempotent partial update to a draft; nil fields are left
// untouched. Applying the same patch twice yields the same draft.
type Patch struct {
	ClientID    *string        `json:"client_id,omitempty"`
	Intent      *models.Intent `json:"intent,omitempty"`
	ServiceCode *string        `json:"service_code,omitempty"`

	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`

	StaffID *string `json:"staff_id,omitempty"`

	Modality *models.Modality `json:"modality,omitempty"`
	RoomID   *string          `json:"room_id,omitempty"`

	RecurrenceEnabled     *bool     `json:"recurrence_enabled,omitempty"`
	RecurrenceWeekdays    *[]string `json:"recurrence_weekdays,omitempty"`
	RecurrenceOccurrences *int      `json:"recurrence_occurrences,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	"sun": time.Sunday,
}

// ParseWeekday accepts the short weekday names used across the API
// ("Mon".."Sun", case-insensitive).
func ParseWeekday(name string) (time.Weekday, bool) {
	if len(name) < 3 {
		return 0, false
	}
	day, ok := weekdayNames[lower3(name)]
	return day, ok
}

func lower3(s string) string {
	b := []byte(s[:3])
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
