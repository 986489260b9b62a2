package composer

import (
	"context"

	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/eligibility"
)

// Candidates ranks the roster for the draft's client + service. Before the
// schedule step is filled in, candidates carry no conflict marking; once a
// window exists, each candidate is checked against the live schedule.
func (cm *Composer) Candidates(ctx context.Context, id string) ([]eligibility.Candidate, error) {
	d, err := cm.draft(id)
	if err != nil {
		return nil, err
	}

	e, err := cm.buildEnv(ctx, d)
	if err != nil {
		return nil, err
	}
	if e.client == nil {
		return nil, httperr.ErrBusiness("client_required")
	}
	if e.service == nil {
		return nil, httperr.ErrBusiness("service_required")
	}

	var window eligibility.Window
	if start, end, ok := d.Window(e.loc); ok {
		window = eligibility.Window{Start: start, End: end}
	}

	roster, err := cm.repo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := cm.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	return eligibility.Resolve(*e.client, *e.service, window, sessions, roster), nil
}
