package repository

import (
	"context"
	"time"

	"crewrecovery-service/internal/domain/entity"
)

// DisruptionRepository defines the interface for disruption event storage
type DisruptionRepository interface {
	Save(ctx context.Context, disruption *entity.Disruption) error
	FindByID(ctx context.Context, id string) (*entity.Disruption, error)
	FindByEventID(ctx context.Context, eventID string) (*entity.Disruption, error)
	FindByEventIDs(ctx context.Context, eventIDs []string) (map[string]*entity.Disruption, error)
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Disruption, error)
	GetLastReported(ctx context.Context) (*entity.Disruption, error)
	UpdateStatus(ctx context.Context, id string, status string, startedAt time.Time) error
	MarkAsProcessed(ctx context.Context, id, status, handlerType, errorDetail string) error
	ResetProcessing(ctx context.Context) error
}
