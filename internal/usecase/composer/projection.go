package composer

import (
	"context"
	"fmt"

	"github.com/spectrumpath/aba-scheduler/internal/httperr"
	"github.com/spectrumpath/aba-scheduler/internal/scheduling/recurrence"
)

// Projection exposes the advisory series arithmetic for a draft whose
// schedule step has a duration picked.
func (cm *Composer) Projection(ctx context.Context, id string) (recurrence.Projection, error) {
	d, err := cm.draft(id)
	if err != nil {
		return recurrence.Projection{}, err
	}
	if d.DurationMin <= 0 {
		return recurrence.Projection{}, httperr.ErrBusiness("duration_required")
	}

	e, err := cm.buildEnv(ctx, d)
	if err != nil {
		return recurrence.Projection{}, err
	}
	return projectionFor(d, e), nil
}

// projectionFor runs the recurrence arithmetic for the draft against the
// client's remaining balance. Recurrence disabled still projects the single
// session so the review step can show totals uniformly.
func projectionFor(d Draft, e env) recurrence.Projection {
	remaining := 0
	hasAuth := e.auth != nil
	if hasAuth {
		remaining = e.auth.RemainingMinutes
	}

	if !d.RecurrenceEnabled {
		return recurrence.Project(d.DurationMin, nil, 0, remaining, hasAuth)
	}
	return recurrence.Project(
		d.DurationMin,
		d.RecurrenceWeekdays,
		d.RecurrenceOccurrences,
		remaining,
		hasAuth,
	)
}

func projectionWarning(p recurrence.Projection) string {
	return fmt.Sprintf(
		"Series projects %d min across %d sessions, %d min over the remaining authorization. You can still book it; flag for reauthorization.",
		p.ProjectedMinutes, p.InstanceCount, p.OverageMinutes,
	)
}
