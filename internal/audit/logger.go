package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	domain "github.com/spectrumpath/aba-scheduler/internal/domain/session"
	"github.com/spectrumpath/aba-scheduler/internal/models"
)

type Logger struct {
	repo domain.Repository
	log  *slog.Logger
}

func New(repo domain.Repository, log *slog.Logger) *Logger {
	return &Logger{repo: repo, log: log}
}

func (l *Logger) Log(
	actorID string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ID:       uuid.NewString(),
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	l.log.Info("audit",
		"action", action,
		"entity", entity,
		"entity_id", entityID,
	)

	return l.repo.AppendAuditLog(context.Background(), &entry)
}
