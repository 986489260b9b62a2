package catalog

import (
	"fmt"
	"strings"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// Static reference data: service templates, intent categories, and
// location/point-of-service cards. Loaded once, never mutated.

type IntentCard struct {
	ID          models.Intent `json:"id"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
}

type LocationCard struct {
	Modality    models.Modality `json:"modality"`
	Label       string          `json:"label"`
	POS         string          `json:"pos"`
	Description string          `json:"description"`
	EVVRequired bool            `json:"evv_required"`
}

var intents = []IntentCard{
	{ID: models.IntentOngoing, Label: "Ongoing ABA therapy", Description: "Weekly prescription hours"},
	{ID: models.IntentAssessment, Label: "Assessment / Reassessment", Description: "Initial or renewal authorizations"},
	{ID: models.IntentParent, Label: "Parent training", Description: "Caregiver collaboration, telehealth friendly"},
	{ID: models.IntentSupervision, Label: "Supervision", Description: "BCBA oversight & fidelity checks"},
	{ID: models.IntentOther, Label: "Other / Non-billable", Description: "Team syncs, transition planning"},
}

var services = []models.ServiceTemplate{
	{
		Code:                 "97153",
		Label:                "Direct ABA therapy",
		Description:          "RBT-led sessions with BCBA oversight, 2-hr default.",
		Intent:               models.IntentOngoing,
		DefaultDurationMin:   120,
		AllowedCredentials:   []string{"RBT", "BCBA"},
		AllowedModalities:    []models.Modality{models.ModalityCenter, models.ModalityHome},
		RecommendedFrequency: "4x / week · 2 hr",
		Billable:             true,
	},
	{
		Code:                 "97155",
		Label:                "Adaptive behavior treatment w/ protocol modification",
		Description:          "BCBA intensive supervision or complex case work.",
		Intent:               models.IntentSupervision,
		DefaultDurationMin:   90,
		AllowedCredentials:   []string{"BCBA"},
		AllowedModalities:    []models.Modality{models.ModalityCenter, models.ModalityHome, models.ModalitySchool},
		RecommendedFrequency: "2x / week · 1.5 hr",
		Billable:             true,
	},
	{
		Code:                 "97156",
		Label:                "Family adaptive behavior treatment guidance",
		Description:          "Parent/caregiver coaching, often telehealth.",
		Intent:               models.IntentParent,
		DefaultDurationMin:   60,
		AllowedCredentials:   []string{"BCBA"},
		AllowedModalities:    []models.Modality{models.ModalityTelehealth, models.ModalityCenter},
		RecommendedFrequency: "1x / week · 1 hr",
		Billable:             true,
	},
	{
		Code:                 "97151",
		Label:                "ABA assessment / reevaluation",
		Description:          "Initial or periodic re-assessments, BCBA only.",
		Intent:               models.IntentAssessment,
		DefaultDurationMin:   150,
		AllowedCredentials:   []string{"BCBA"},
		AllowedModalities:    []models.Modality{models.ModalityCenter, models.ModalityHome},
		RecommendedFrequency: "As prescribed",
		Billable:             true,
	},
	{
		Code:                 "TEAM-HUDDLE",
		Label:                "Care team sync (non-billable)",
		Description:          "Internal collaboration, progress, travel planning.",
		Intent:               models.IntentOther,
		DefaultDurationMin:   45,
		AllowedCredentials:   []string{"BCBA", "RBT"},
		AllowedModalities:    []models.Modality{models.ModalityCenter, models.ModalityTelehealth},
		RecommendedFrequency: "Ad-hoc",
		Billable:             false,
	},
}

var locations = []LocationCard{
	{Modality: models.ModalityCenter, Label: "Center", POS: "POS 11 · Office", Description: "Center pods with room inventory.", EVVRequired: false},
	{Modality: models.ModalityHome, Label: "Home / Community", POS: "POS 12 · Home", Description: "Client address with EVV capture.", EVVRequired: true},
	{Modality: models.ModalitySchool, Label: "School", POS: "POS 03 · School", Description: "District contacts + resource rooms.", EVVRequired: false},
	{Modality: models.ModalityTelehealth, Label: "Telehealth", POS: "POS 02 · Telehealth", Description: "Secure session links.", EVVRequired: false},
}

// DurationOptions are the session lengths offered by the composer, minutes.
var DurationOptions = []int{30, 45, 60, 90, 120, 150, 180}

func Intents() []IntentCard {
	return append([]IntentCard(nil), intents...)
}

func Services() []models.ServiceTemplate {
	return append([]models.ServiceTemplate(nil), services...)
}

// ServicesByIntent filters the catalog; a zero intent returns everything.
func ServicesByIntent(intent models.Intent) []models.ServiceTemplate {
	if intent == "" {
		return Services()
	}
	var out []models.ServiceTemplate
	for _, svc := range services {
		if svc.Intent == intent {
			out = append(out, svc)
		}
	}
	return out
}

func ServiceByCode(code string) (models.ServiceTemplate, bool) {
	for _, svc := range services {
		if svc.Code == code {
			return svc, true
		}
	}
	return models.ServiceTemplate{}, false
}

// MustServiceByCode panics on an unknown code. A session referencing a code
// outside the catalog is a data-integrity defect, not a user input problem.
func MustServiceByCode(code string) models.ServiceTemplate {
	svc, ok := ServiceByCode(code)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown service code %q", code))
	}
	return svc
}

func Locations() []LocationCard {
	return append([]LocationCard(nil), locations...)
}

func LocationByModality(m models.Modality) (LocationCard, bool) {
	for _, card := range locations {
		if card.Modality == m {
			return card, true
		}
	}
	return LocationCard{}, false
}

func ValidIntent(intent models.Intent) bool {
	for _, card := range intents {
		if card.ID == intent {
			return true
		}
	}
	return false
}

func ValidDuration(minutes int) bool {
	for _, d := range DurationOptions {
		if d == minutes {
			return true
		}
	}
	return false
}

// InferModality seeds the location step's default from the client's recorded
// location text. The user may override it at that step.
func InferModality(clientLocation string) models.Modality {
	lowered := strings.ToLower(clientLocation)
	switch {
	case strings.Contains(lowered, "home"):
		return models.ModalityHome
	case strings.Contains(lowered, "telehealth"), strings.Contains(lowered, "virtual"):
		return models.ModalityTelehealth
	case strings.Contains(lowered, "school"), strings.Contains(lowered, "elementary"):
		return models.ModalitySchool
	default:
		return models.ModalityCenter
	}
}
