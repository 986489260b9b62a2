package models

// Intent is the clinical purpose category of a session.
type Intent string

const (
	IntentOngoing     Intent = "ongoing"
	IntentAssessment  Intent = "assessment"
	IntentParent      Intent = "parent"
	IntentSupervision Intent = "supervision"
	IntentOther       Intent = "other"
)

// ServiceTemplate is an immutable catalog entry for a billing/service code.
// Templates are loaded at startup and never mutated.
type ServiceTemplate struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Intent      Intent `json:"intent"`

	DefaultDurationMin int `json:"default_duration_min"`

	AllowedCredentials []string   `json:"allowed_credentials"`
	AllowedModalities  []Modality `json:"allowed_modalities"`

	RecommendedFrequency string `json:"recommended_frequency"`
	Billable             bool   `json:"billable"`
}

// AllowsCredential reports whether the credential may deliver this service.
func (t ServiceTemplate) AllowsCredential(credential string) bool {
	for _, c := range t.AllowedCredentials {
		if c == credential {
			return true
		}
	}
	return false
}

// AllowsModality reports whether the service may be delivered in the setting.
func (t ServiceTemplate) AllowsModality(m Modality) bool {
	for _, allowed := range t.AllowedModalities {
		if allowed == m {
			return true
		}
	}
	return false
}
