package entity

import (
	"time"

	"gorm.io/gorm"
)

// RepositioningFlight represents one option for moving spare crew
// between bases. The pool is read-only within a recovery pass.
type RepositioningFlight struct {
	ID             uint
	FlightID       string
	Origin         string
	Destination    string
	SchedDep       time.Time
	SchedArr       time.Time
	SeatsAvailable bool
	Cost           *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
}
