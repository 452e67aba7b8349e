package entity

import (
	"time"

	"gorm.io/gorm"
)

// Hotel represents one property of the layover hotel inventory.
type Hotel struct {
	ID             uint
	HotelID        string
	Location       string
	Name           string
	AvailableRooms int
	Rate           *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}

// TransportOption represents a ground transport service at an airport.
type TransportOption struct {
	ID             uint
	Airport        string
	ServiceName    string
	SeatsAvailable int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}
