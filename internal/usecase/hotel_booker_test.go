package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"crewrecovery-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookHotelPrefersMostRooms(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: 2},
		{HotelID: "H002", Location: "ORD", Name: "Airport Plaza ORD", AvailableRooms: 7},
	}}
	booker := NewHotelBooker(repo, nopLogger{})

	inventory, err := repo.FindByLocation(context.Background(), "ORD")
	require.NoError(t, err)

	result := booker.BookHotel(context.Background(), "ORD", "C100", inventory)
	require.True(t, result.Success)
	assert.Equal(t, "H002", result.HotelID)
	assert.Equal(t, "Airport Plaza ORD", result.HotelName)
}

func TestBookHotelConfirmationFormat(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: 3},
	}}
	booker := NewHotelBooker(repo, nopLogger{})

	inventory, _ := repo.FindByLocation(context.Background(), "ORD")
	result := booker.BookHotel(context.Background(), "ORD", "C145", inventory)
	require.True(t, result.Success)
	assert.Regexp(t, regexp.MustCompile(`^CONF-C145-[1-9][0-9]{3}$`), result.Confirmation)
}

func TestBookHotelNoRooms(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: 0},
	}}
	booker := NewHotelBooker(repo, nopLogger{})

	inventory, _ := repo.FindByLocation(context.Background(), "ORD")
	result := booker.BookHotel(context.Background(), "ORD", "C100", inventory)
	assert.False(t, result.Success)
	assert.Equal(t, "No available rooms at ORD", result.FailureReason)
}

func TestBookHotelIgnoresOtherLocations(t *testing.T) {
	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "LAX", Name: "Runway Inn LAX", AvailableRooms: 5},
	}}
	booker := NewHotelBooker(repo, nopLogger{})

	inventory, _ := repo.FindByLocation(context.Background(), "LAX")
	result := booker.BookHotel(context.Background(), "ORD", "C100", inventory)
	assert.False(t, result.Success)
}

func TestBookHotelFallsThroughOnLostClaim(t *testing.T) {
	// H002 looks best in the snapshot but its rooms are already gone in
	// the repository, so the booking falls through to H001.
	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: 1},
		{HotelID: "H002", Location: "ORD", Name: "Airport Plaza ORD", AvailableRooms: 0},
	}}
	stale := []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: 1},
		{HotelID: "H002", Location: "ORD", Name: "Airport Plaza ORD", AvailableRooms: 8},
	}
	booker := NewHotelBooker(repo, nopLogger{})

	result := booker.BookHotel(context.Background(), "ORD", "C100", stale)
	require.True(t, result.Success)
	assert.Equal(t, "H001", result.HotelID)
}

func TestBookHotelConcurrentBookingsNeverOversell(t *testing.T) {
	const rooms = 3
	const bookers = 8

	repo := &fakeHotelRepo{hotels: []*entity.Hotel{
		{HotelID: "H001", Location: "ORD", Name: "Runway Inn ORD", AvailableRooms: rooms},
	}}
	booker := NewHotelBooker(repo, nopLogger{})

	var wg sync.WaitGroup
	results := make([]*BookingResult, bookers)
	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inventory, _ := repo.FindByLocation(context.Background(), "ORD")
			results[i] = booker.BookHotel(context.Background(), "ORD", fmt.Sprintf("C%d", 100+i), inventory)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}
	assert.Equal(t, rooms, succeeded)
	assert.Equal(t, 0, repo.hotels[0].AvailableRooms)
}
