package models

import "time"

// AuthorizationBalance tracks payer-approved billable minutes for a client.
// Invariant: 0 <= RemainingMinutes <= AuthorizedMinutes. Only committing a
// session against the client debits the balance.
type AuthorizationBalance struct {
	ClientID string `json:"client_id"`
	Payer    string `json:"payer"`

	AuthorizedMinutes int `json:"authorized_minutes"`
	UsedMinutes       int `json:"used_minutes"`
	RemainingMinutes  int `json:"remaining_minutes"`

	ExpiresOn time.Time `json:"expires_on"`

	AllowedServiceCodes []string `json:"allowed_service_codes"`
}

// Covers reports whether the service code is on the authorization.
func (a AuthorizationBalance) Covers(serviceCode string) bool {
	for _, code := range a.AllowedServiceCodes {
		if code == serviceCode {
			return true
		}
	}
	return false
}
