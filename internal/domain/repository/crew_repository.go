package repository

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// CrewRepository defines the interface for crew roster operations
type CrewRepository interface {
	FindByFlight(ctx context.Context, flightID string) ([]*entity.CrewMember, error)
	FindByCrewID(ctx context.Context, crewID string) (*entity.CrewMember, error)
	FindUnassignedActive(ctx context.Context) ([]*entity.CrewMember, error)

	// ClaimSpare atomically assigns a spare to a flight. It returns false
	// when the member was already claimed by a concurrent recovery pass.
	ClaimSpare(ctx context.Context, crewID, flightID string) (bool, error)
}
