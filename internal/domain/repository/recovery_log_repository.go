package repository

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// RecoveryLogRepository defines the interface for the recovery audit log
type RecoveryLogRepository interface {
	Save(ctx context.Context, result *entity.RecoveryResult) error
	FindByFlight(ctx context.Context, flightID string, limit int) ([]*entity.RecoveryResult, error)
	FindByDisruptionID(ctx context.Context, disruptionID string) (*entity.RecoveryResult, error)
}
