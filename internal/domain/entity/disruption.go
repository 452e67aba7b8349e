package entity

import (
	"time"
)

// Disruption process status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Disruption types
const (
	DisruptionWeather     = "weather"
	DisruptionMaintenance = "maintenance"
	DisruptionCrew        = "crew"
	DisruptionAirport     = "airport"
	DisruptionOther       = "other"
)

// Disruption represents a disruption event reported by the ops feed.
type Disruption struct {
	ID               string    `bson:"_id,omitempty"`
	EventID          string    `bson:"eventId"`
	FlightID         string    `bson:"flightId"`
	Type             string    `bson:"type"`
	Description      string    `bson:"description"`
	Severity         int       `bson:"severity"`
	DelayMinutes     int       `bson:"delayMinutes"`
	ReportedAt       time.Time `bson:"reportedAt"`
	ProcessStatus    string    `bson:"processStatus"`
	ProcessStartedAt time.Time `bson:"processStartedAt"`
	ProcessedAt      time.Time `bson:"processedAt"`
	HandlerType      string    `bson:"handlerType"`
	ErrorDetail      string    `bson:"errorDetail"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}
