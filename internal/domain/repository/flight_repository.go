package repository

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight schedule operations
type FlightRepository interface {
	GetByFlightID(ctx context.Context, flightID string) (*entity.Flight, error)
}

// RepositionRepository defines the interface for the repositioning pool
type RepositionRepository interface {
	FindByRoute(ctx context.Context, origin, destination string) ([]*entity.RepositioningFlight, error)
}
