package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/pkg/logger"
)

// BookingResult is the outcome of one hotel booking attempt.
type BookingResult struct {
	Success       bool
	HotelID       string
	HotelName     string
	Confirmation  string
	FailureReason string
}

// HotelBooker selects an available room for a crew member at a location.
// Preferring the least room-constrained property reduces contention for
// subsequent bookings.
type HotelBooker struct {
	hotelRepo repository.HotelRepository
	logger    logger.Logger
}

// NewHotelBooker creates a new hotel booker
func NewHotelBooker(hotelRepo repository.HotelRepository, logger logger.Logger) *HotelBooker {
	return &HotelBooker{
		hotelRepo: hotelRepo,
		logger:    logger,
	}
}

// BookHotel books a room for crewID at location from the given inventory
// snapshot. Candidates are tried most-rooms-first; each candidate is
// claimed through the repository so two concurrent passes cannot both
// take the last room. Failure to find a room is a result, not an error.
//
// The confirmation token is synthetic and carries no idempotency
// guarantee.
func (b *HotelBooker) BookHotel(ctx context.Context, location, crewID string, inventory []*entity.Hotel) *BookingResult {
	candidates := make([]*entity.Hotel, 0, len(inventory))
	for _, hotel := range inventory {
		if hotel.Location == location && hotel.AvailableRooms > 0 {
			candidates = append(candidates, hotel)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AvailableRooms > candidates[j].AvailableRooms
	})

	for _, hotel := range candidates {
		claimed, err := b.hotelRepo.ReserveRoom(ctx, hotel.HotelID)
		if err != nil {
			b.logger.Error("Failed to reserve room", "hotelId", hotel.HotelID, "error", err)
			continue
		}
		if !claimed {
			// Lost the race for the last room, try the next property
			continue
		}
		return &BookingResult{
			Success:      true,
			HotelID:      hotel.HotelID,
			HotelName:    hotel.Name,
			Confirmation: fmt.Sprintf("CONF-%s-%d", crewID, 1000+rand.Intn(9000)),
		}
	}

	return &BookingResult{
		Success:       false,
		FailureReason: fmt.Sprintf("No available rooms at %s", location),
	}
}
