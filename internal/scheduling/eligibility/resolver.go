package eligibility

import (
	"sort"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/models"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/conflict"
)

// Candidate is one staff member ranked for a proposed session.
type Candidate struct {
	Staff     models.StaffAvailability `json:"staff"`
	LoadRatio float64                  `json:"load_ratio"`
	Band      models.UtilizationBand   `json:"band"`
	Assigned  bool                     `json:"assigned"`
	Conflict  bool                     `json:"conflict"`
}

// Window is the proposed session time. A zero window skips per-candidate
// conflict marking (the caller has not picked a time yet).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() || w.End.IsZero()
}

// Resolve computes the ranked candidate staff list for a client + service.
// Credential is the only hard filter; availability is advisory. Care-team
// staff sort first, then ascending load ratio, then staff id for a stable
// order. An empty result is a valid, reportable state, not an error.
func Resolve(
	client models.Client,
	service models.ServiceTemplate,
	window Window,
	sessions []models.Session,
	roster []models.StaffAvailability,
) []Candidate {

	candidates := make([]Candidate, 0, len(roster))
	for _, staff := range roster {
		if !service.AllowsCredential(staff.Credential) {
			continue
		}

		cand := Candidate{
			Staff:     staff,
			LoadRatio: staff.UtilizationRatio(),
			Band:      staff.Band(),
			Assigned:  client.OnCareTeam(staff.StaffID),
		}

		if !window.IsZero() {
			hit := conflict.Find(window.Start, window.End, sessions, conflict.SameStaff(staff.StaffID))
			cand.Conflict = hit != nil
		}

		candidates = append(candidates, cand)
	}

	// Assigned staff first regardless of load; among peers, prefer the
	// less-loaded. Over-capacity staff are deprioritized, never excluded.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Assigned != b.Assigned {
			return a.Assigned
		}
		if a.LoadRatio != b.LoadRatio {
			return a.LoadRatio < b.LoadRatio
		}
		return a.Staff.StaffID < b.Staff.StaffID
	})

	return candidates
}
