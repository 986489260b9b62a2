package session

import (
	"context"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/models"
)

// ListForRange returns sessions overlapping [from, to). A zero range lists
// everything.
func (u *Usecase) ListForRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	if from.IsZero() || to.IsZero() {
		return u.repo.ListSessions(ctx)
	}
	return u.repo.ListSessionsForRange(ctx, from, to)
}

func (u *Usecase) Get(ctx context.Context, id string) (*models.Session, error) {
	return u.repo.GetSession(ctx, id)
}
