package usecase

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// DisruptionHandler defines the interface for disruption event handlers
type DisruptionHandler interface {
	// CanHandle determines if this handler can process the given disruption type
	CanHandle(disruptionType string) bool

	// Process handles the disruption event
	Process(ctx context.Context, disruption *entity.Disruption) error
}

// DisruptionRouter routes disruption events to the appropriate handler by type
type DisruptionRouter interface {
	// Register registers a handler for specific disruption types
	Register(handler DisruptionHandler)

	// GetHandler returns the appropriate handler for a given disruption type
	GetHandler(disruptionType string) DisruptionHandler
}
