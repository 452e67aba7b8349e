package usecase

import (
	"context"
	"strings"

	"crewrecovery-service/internal/domain/entity"
)

// RecoveryHandlerAdapter adapts the RecoveryOrchestrator to the
// DisruptionHandler interface for the disruption types it covers.
type RecoveryHandlerAdapter struct {
	orchestrator interface {
		HandleDisruption(ctx context.Context, d *entity.Disruption) (*entity.RecoveryResult, error)
	}
	name  string
	types []string
}

// NewRecoveryHandlerAdapter creates a new adapter
func NewRecoveryHandlerAdapter(orchestrator interface {
	HandleDisruption(ctx context.Context, d *entity.Disruption) (*entity.RecoveryResult, error)
}, name string, types []string) *RecoveryHandlerAdapter {
	return &RecoveryHandlerAdapter{
		orchestrator: orchestrator,
		name:         name,
		types:        types,
	}
}

// CanHandle checks if this handler covers the disruption type
func (a *RecoveryHandlerAdapter) CanHandle(disruptionType string) bool {
	for _, t := range a.types {
		if strings.EqualFold(t, disruptionType) {
			return true
		}
	}
	return false
}

// Process runs a recovery pass for the disruption
func (a *RecoveryHandlerAdapter) Process(ctx context.Context, disruption *entity.Disruption) error {
	_, err := a.orchestrator.HandleDisruption(ctx, disruption)
	return err
}
