package entity

import (
	"time"

	"gorm.io/gorm"
)

// Flight status values
const (
	FlightStatusScheduled = "scheduled"
	FlightStatusDelayed   = "delayed"
	FlightStatusCancelled = "cancelled"
	FlightStatusDeparted  = "departed"
	FlightStatusArrived   = "arrived"
)

// Flight represents one scheduled flight. Immutable within a recovery pass.
type Flight struct {
	ID           uint
	FlightID     string
	Origin       string
	Destination  string
	ScheduledDep time.Time
	ScheduledArr time.Time
	AircraftType string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}

// ProjectedArrival returns the delay-adjusted arrival time.
func (f *Flight) ProjectedArrival(delayMinutes int) time.Time {
	return f.ScheduledArr.Add(time.Duration(delayMinutes) * time.Minute)
}
