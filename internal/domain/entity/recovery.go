package entity

import (
	"time"
)

// RecoveryStatus is the tagged outcome of one disruption-handling pass.
type RecoveryStatus string

const (
	RecoveryLegal                  RecoveryStatus = "legal"
	RecoveryReassigned             RecoveryStatus = "reassigned"
	RecoveryRepositioningInitiated RecoveryStatus = "repositioning_initiated"
	RecoveryEscalationRequired     RecoveryStatus = "escalation_required"
	RecoveryBooked                 RecoveryStatus = "booked"
)

// RecoveryStep records one step of the fallback chain for the audit log.
type RecoveryStep struct {
	Name   string    `bson:"name" json:"name"`
	Detail string    `bson:"detail" json:"detail"`
	At     time.Time `bson:"at" json:"at"`
}

// HotelBooking records one confirmed room for a displaced crew member.
type HotelBooking struct {
	CrewID       string `bson:"crewId" json:"crew_id"`
	HotelID      string `bson:"hotelId" json:"hotel_id"`
	HotelName    string `bson:"hotelName" json:"hotel_name"`
	Confirmation string `bson:"confirmation" json:"confirmation"`
}

// RecoveryResult is the single outcome of one disruption-handling pass.
// Status determines which optional fields are populated.
type RecoveryResult struct {
	ID               string         `bson:"_id,omitempty" json:"id,omitempty"`
	DisruptionID     string         `bson:"disruptionId" json:"disruption_id"`
	FlightID         string         `bson:"flightId" json:"flight_id"`
	Status           RecoveryStatus `bson:"status" json:"status"`
	Message          string         `bson:"message" json:"message"`
	AssignedCrew     []CrewMember   `bson:"assignedCrew,omitempty" json:"assigned_crew,omitempty"`
	SpareUsed        string         `bson:"spareUsed,omitempty" json:"spare_used,omitempty"`
	Policy           *PolicyRecord  `bson:"policy,omitempty" json:"policy,omitempty"`
	Rationale        string         `bson:"rationale,omitempty" json:"rationale,omitempty"`
	LodgingRequired  bool           `bson:"lodgingRequired" json:"lodging_required"`
	Bookings         []HotelBooking `bson:"bookings,omitempty" json:"bookings,omitempty"`
	TransportService string         `bson:"transportService,omitempty" json:"transport_service,omitempty"`
	Steps            []RecoveryStep `bson:"steps" json:"steps"`
	ResolutionMs     int64          `bson:"resolutionMs" json:"resolution_ms"`
	CreatedAt        time.Time      `bson:"createdAt" json:"created_at"`
}

// AddStep appends an audit step with the given name and detail.
func (r *RecoveryResult) AddStep(name, detail string) {
	r.Steps = append(r.Steps, RecoveryStep{Name: name, Detail: detail, At: time.Now().UTC()})
}
