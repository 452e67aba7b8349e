package repository

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// HotelRepository defines the interface for layover hotel inventory
type HotelRepository interface {
	FindByLocation(ctx context.Context, location string) ([]*entity.Hotel, error)

	// ReserveRoom atomically decrements the room count of a hotel. It
	// returns false when no room was left to claim.
	ReserveRoom(ctx context.Context, hotelID string) (bool, error)
}

// TransportRepository defines the interface for ground transport options
type TransportRepository interface {
	FindByAirport(ctx context.Context, airport string) ([]*entity.TransportOption, error)
}
