package store

import (
	"time"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Loaders used by the seed and by test fixtures.

func (m *Memory) AddClients(clients ...models.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = append(m.clients, clients...)
}

func (m *Memory) AddStaff(staff ...models.StaffAvailability) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff = append(m.staff, staff...)
}

func (m *Memory) AddRooms(rooms ...models.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms = append(m.rooms, rooms...)
}

func (m *Memory) PutAuthorization(auth models.AuthorizationBalance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auths[auth.ClientID] = auth
}

// AddSessions loads sessions without conflict checks. Seed data only.
func (m *Memory) AddSessions(sessions ...models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, sessions...)
}

// SeedPractice loads the demo practice dataset: the Austin roster, payer
// authorizations, room inventory, and a few in-flight sessions placed in
// the week containing the store clock's current time.
func SeedPractice(m *Memory) {
	m.AddStaff(
		models.StaffAvailability{StaffID: "STF-112", Name: "Jules Bernal, RBT", Credential: "RBT", Location: "Austin - North Center", LoadMinutesWeek: 1680, TargetMinutesWeek: 1920, TravelBufferMinutes: 15},
		models.StaffAvailability{StaffID: "STF-210", Name: "Sasha Kim, RBT", Credential: "RBT", Location: "In-home (North Loop)", LoadMinutesWeek: 1200, TargetMinutesWeek: 1800, TravelBufferMinutes: 25, EVVRequired: true},
		models.StaffAvailability{StaffID: "STF-031", Name: "Dr. Priya Mehta, BCBA", Credential: "BCBA", Location: "Multi-site", LoadMinutesWeek: 1080, TargetMinutesWeek: 1440},
		models.StaffAvailability{StaffID: "STF-099", Name: "Dr. Mateo Ruiz, BCBA", Credential: "BCBA", Location: "In-home", LoadMinutesWeek: 1500, TargetMinutesWeek: 1680, TravelBufferMinutes: 20, EVVRequired: true},
		models.StaffAvailability{StaffID: "STF-041", Name: "Jordan Patel, BCBA", Credential: "BCBA", Location: "Telehealth", LoadMinutesWeek: 1260, TargetMinutesWeek: 1440},
	)

	m.AddClients(
		models.Client{
			ID: "CLI-9081", Name: "Mason Tillery", Age: 6,
			Location: "Austin - North Center", ModalityMix: "Center (80%) · Home (20%)",
			HoursPrescribedWeekly: 20, HoursDeliveredWeekly: 16,
			CareTeamStaffIDs: []string{"STF-031", "STF-112"},
			Status:           models.ClientActive,
		},
		models.Client{
			ID: "CLI-087", Name: "Nova Hernandez", Age: 5,
			Location: "North Loop In-home", ModalityMix: "Home (100%)",
			HoursPrescribedWeekly: 15, HoursDeliveredWeekly: 12,
			CareTeamStaffIDs: []string{"STF-099", "STF-210"},
			Status:           models.ClientActive,
		},
		models.Client{
			ID: "CLI-1190", Name: "Harper Lyons", Age: 7,
			Location: "Telehealth · CST", ModalityMix: "Telehealth caregiver coaching",
			HoursPrescribedWeekly: 8, HoursDeliveredWeekly: 6,
			CareTeamStaffIDs: []string{"STF-041"},
			Status:           models.ClientActive,
		},
		models.Client{
			ID: "CLI-2002", Name: "Noah Patel", Age: 5,
			Location: "Austin - North Center", ModalityMix: "Center-based",
			HoursPrescribedWeekly: 12,
			CareTeamStaffIDs:      []string{"STF-031", "STF-112"},
			Status:                models.ClientWaitlist,
		},
	)

	m.AddRooms(
		models.Room{ID: "RM-101", Name: "Pod B · Sensory", Location: "Austin - North Center", Capacity: 3, Type: models.RoomTherapy, BookedHours: 32, AvailableHours: 40},
		models.Room{ID: "RM-201", Name: "Telehealth Suite A", Location: "Virtual · CST", Capacity: 1, Type: models.RoomTelehealth, BookedHours: 18, AvailableHours: 30},
		models.Room{ID: "RM-301", Name: "Group Room 1", Location: "Austin - North Center", Capacity: 8, Type: models.RoomGroup, BookedHours: 22, AvailableHours: 35},
		models.Room{ID: "RM-401", Name: "School Resource Slot", Location: "Jefferson Elementary", Capacity: 4, Type: models.RoomTherapy, BookedHours: 10, AvailableHours: 25},
	)

	expiry := m.clk.Now().AddDate(0, 2, 0)
	m.PutAuthorization(models.AuthorizationBalance{
		ClientID: "CLI-9081", Payer: "Beacon Health",
		AuthorizedMinutes: 720, UsedMinutes: 475, RemainingMinutes: 245,
		ExpiresOn:           expiry,
		AllowedServiceCodes: []string{"97153", "97155"},
	})
	m.PutAuthorization(models.AuthorizationBalance{
		ClientID: "CLI-087", Payer: "United Healthcare",
		AuthorizedMinutes: 900, UsedMinutes: 410, RemainingMinutes: 490,
		ExpiresOn:           expiry.AddDate(0, 0, 15),
		AllowedServiceCodes: []string{"97155"},
	})
	m.PutAuthorization(models.AuthorizationBalance{
		ClientID: "CLI-1190", Payer: "Aetna Better Health",
		AuthorizedMinutes: 480, UsedMinutes: 300, RemainingMinutes: 180,
		ExpiresOn:           expiry.AddDate(0, -1, 0),
		AllowedServiceCodes: []string{"97156"},
	})

	monday := startOfWeek(m.clk.Now())
	at := func(dayOffset, hour, minute int) time.Time {
		d := monday.AddDate(0, 0, dayOffset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
	}

	m.AddSessions(
		models.Session{
			ID: "SES-100245", ClientID: "CLI-9081", StaffID: "STF-112", RoomID: "RM-101",
			ServiceCode: "97153", Modality: models.ModalityCenter,
			Status: string(domain.StatusPendingValidation),
			Start:  at(0, 9, 0), End: at(0, 11, 0),
			Notes: "BCBA overlap for toileting generalization.",
		},
		models.Session{
			ID: "SES-100246", ClientID: "CLI-087", StaffID: "STF-210",
			ServiceCode: "97155", Modality: models.ModalityHome,
			Status: string(domain.StatusScheduled), EVVRequired: true,
			Start: at(0, 12, 30), End: at(0, 14, 0),
			Notes: "Travel buffer 25 min.",
		},
		models.Session{
			ID: "SES-100247", ClientID: "CLI-1190", StaffID: "STF-041",
			ServiceCode: "97156", Modality: models.ModalityTelehealth,
			Status: string(domain.StatusScheduled),
			Start:  at(0, 17, 0), End: at(0, 18, 0),
		},
	)
}

// startOfWeek returns midnight Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}
