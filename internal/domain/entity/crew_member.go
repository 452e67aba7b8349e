package entity

import (
	"time"

	"gorm.io/gorm"
)

// Crew status values
const (
	CrewStatusActive   = "active"
	CrewStatusInactive = "inactive"
	CrewStatusOnLeave  = "on_leave"
	CrewStatusTraining = "training"
)

// Crew roles
const (
	RoleCaptain         = "captain"
	RoleFirstOfficer    = "first_officer"
	RoleFlightAttendant = "flight_attendant"
)

// CrewMember represents one entry of the crew roster.
// DutyEnd and RestUntil are kept as raw timestamp strings so that a
// malformed value only fails the legality check for that one member.
type CrewMember struct {
	ID                uint
	CrewID            string
	Name              string
	Role              string
	Base              string
	QualifiedAircraft string
	AssignedFlightID  *string
	DutyEnd           *string // nil means no prior duty on record
	RestUntil         string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt
}

// IsSpare reports whether the member is available for reassignment.
func (c *CrewMember) IsSpare() bool {
	return c.AssignedFlightID == nil && c.Status == CrewStatusActive
}
