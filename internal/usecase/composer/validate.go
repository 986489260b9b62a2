package composer

import (
	"time"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Reason is a per-condition explanation rendered inline next to the control
// that caused it.
type Reason struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StepStatus is the outcome of one step's completion predicate. Blocking
// reasons gate the Next transition; warnings are advisory and never do.
type StepStatus struct {
	Step     string   `json:"step"`
	Label    string   `json:"label"`
	Complete bool     `json:"complete"`
	Blocking []Reason `json:"blocking,omitempty"`
	Warnings []Reason `json:"warnings,omitempty"`
}

// env is the resolved context a draft is validated against. All predicates
// are pure functions over draft + env.
type env struct {
	client      *models.Client
	auth        *models.AuthorizationBalance
	service     *models.ServiceTemplate
	staff       *models.StaffAvailability
	centerRooms int

	hours      domain.ClinicHours
	closedDays []time.Weekday
	loc        *time.Location
}

func (e env) isClosedDay(day time.Weekday) bool {
	for _, closed := range e.closedDays {
		if closed == day {
			return true
		}
	}
	return false
}

// evaluate runs every step's completion predicate over the draft.
func evaluate(d Draft, e env) []StepStatus {
	statuses := []StepStatus{
		clientStatus(d, e),
		serviceStatus(d, e),
		scheduleStatus(d, e),
		staffStatus(d, e),
		locationStatus(d, e),
		recurrenceStatus(d, e),
	}

	review := StepStatus{Step: StepReview.ID(), Label: StepReview.Label()}
	review.Complete = true
	for _, st := range statuses {
		if !st.Complete {
			review.Complete = false
			break
		}
	}
	return append(statuses, review)
}

func clientStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepClient.ID(), Label: StepClient.Label()}
	if d.ClientID == "" || e.client == nil {
		st.Blocking = append(st.Blocking, Reason{"client_required", "Select a client to load authorizations and care team."})
		return st
	}
	st.Complete = true
	if e.auth == nil {
		st.Warnings = append(st.Warnings, Reason{"no_authorization", "No active authorization detected — schedule will be non-billable."})
	}
	return st
}

func serviceStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepService.ID(), Label: StepService.Label()}
	switch {
	case e.client == nil:
		st.Blocking = append(st.Blocking, Reason{"client_required", "Select a client first to see intents and services."})
	case d.Intent == "":
		st.Blocking = append(st.Blocking, Reason{"intent_required", "Pick the clinical intent for this session."})
	case e.service == nil:
		st.Blocking = append(st.Blocking, Reason{"service_required", "Pick a service code."})
	default:
		st.Complete = true
		if e.auth != nil && e.service.Billable && !e.auth.Covers(e.service.Code) {
			st.Warnings = append(st.Warnings, Reason{"service_not_on_authorization", "Service code is not on the client's authorization."})
		}
	}
	return st
}

func scheduleStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepSchedule.ID(), Label: StepSchedule.Label()}

	if d.Date == "" {
		st.Blocking = append(st.Blocking, Reason{"date_required", "Pick a date."})
	}
	if d.StartTime == "" {
		st.Blocking = append(st.Blocking, Reason{"start_time_required", "Pick a start time."})
	}
	if d.DurationMin <= 0 {
		st.Blocking = append(st.Blocking, Reason{"duration_required", "Pick a session length."})
	}
	if len(st.Blocking) > 0 {
		return st
	}

	start, end, ok := d.Window(e.loc)
	if !ok {
		st.Blocking = append(st.Blocking, Reason{"invalid_date_or_time", "Date or time is invalid."})
		return st
	}

	if e.isClosedDay(start.Weekday()) {
		st.Blocking = append(st.Blocking, Reason{"closed_day", "The clinic does not book sessions on " + start.Weekday().String() + "."})
	}
	if !domain.WithinClinicHours(e.hours, start, end) {
		st.Blocking = append(st.Blocking, Reason{"outside_clinic_hours", "Session falls outside clinic hours (" + e.hours.Open + "–" + e.hours.Close + ")."})
	}
	if e.auth != nil && d.DurationMin > e.auth.RemainingMinutes {
		st.Blocking = append(st.Blocking, Reason{"exceeds_remaining_minutes", "Session length exceeds the client's remaining authorized minutes."})
	}

	st.Complete = len(st.Blocking) == 0
	return st
}

func staffStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepStaff.ID(), Label: StepStaff.Label()}
	if d.StaffID == "" || e.staff == nil {
		st.Blocking = append(st.Blocking, Reason{"staff_required", "Pick a team member to deliver the session."})
		return st
	}
	st.Complete = true
	if e.service != nil && !e.service.AllowsCredential(e.staff.Credential) {
		// Credential is a hard constraint in the eligibility list; a staff
		// id patched in directly still gets the inline explanation.
		st.Complete = false
		st.Blocking = append(st.Blocking, Reason{"credential_mismatch", e.staff.Credential + " cannot deliver " + e.service.Code + "."})
		return st
	}
	if e.staff.Band() == models.BandOverbooked {
		st.Warnings = append(st.Warnings, Reason{"over_capacity", e.staff.Name + " is over weekly capacity."})
	}
	return st
}

func locationStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepLocation.ID(), Label: StepLocation.Label()}
	if d.Modality == "" {
		st.Blocking = append(st.Blocking, Reason{"location_required", "Pick a care setting."})
		return st
	}
	if d.Modality == models.ModalityCenter && e.centerRooms > 0 && d.RoomID == "" {
		st.Blocking = append(st.Blocking, Reason{"room_required", "Pick a room for the center session."})
		return st
	}
	st.Complete = true
	if e.service != nil && !e.service.AllowsModality(d.Modality) {
		st.Warnings = append(st.Warnings, Reason{"modality_unusual", string(d.Modality) + " is not a typical setting for " + e.service.Code + "."})
	}
	return st
}

func recurrenceStatus(d Draft, e env) StepStatus {
	st := StepStatus{Step: StepRecurrence.ID(), Label: StepRecurrence.Label()}
	if !d.RecurrenceEnabled {
		st.Complete = true
		return st
	}

	if len(d.RecurrenceWeekdays) == 0 {
		st.Blocking = append(st.Blocking, Reason{"weekdays_required", "Pick at least one weekday for the series."})
	}
	if d.RecurrenceOccurrences < 1 {
		st.Blocking = append(st.Blocking, Reason{"occurrences_required", "Pick how many weeks the series runs."})
	}
	st.Complete = len(st.Blocking) == 0

	// Projected overage is advisory: surfaced, never a gate. The single
	// session duration check at the Schedule step stays the hard policy.
	if st.Complete && e.auth != nil {
		p := projectionFor(d, e)
		if p.ExceedsAuthorization {
			st.Warnings = append(st.Warnings, Reason{"exceeds_authorization", projectionWarning(p)})
		}
	}
	return st
}
