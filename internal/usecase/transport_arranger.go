package usecase

import (
	"fmt"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"
)

// TransportResult is the outcome of a ground transport arrangement.
type TransportResult struct {
	Success       bool
	Service       string
	SeatsBooked   int
	FailureReason string
}

// TransportArranger picks a ground transport service with enough seats
// for a crew group. Best effort: a miss never escalates on its own.
type TransportArranger struct {
	logger logger.Logger
}

// NewTransportArranger creates a new transport arranger
func NewTransportArranger(logger logger.Logger) *TransportArranger {
	return &TransportArranger{logger: logger}
}

// Arrange selects the first option at the airport that seats the whole group.
func (a *TransportArranger) Arrange(airport string, crewIDs []string, options []*entity.TransportOption) *TransportResult {
	seatsNeeded := len(crewIDs)
	for _, option := range options {
		if option.Airport == airport && option.SeatsAvailable >= seatsNeeded {
			return &TransportResult{
				Success:     true,
				Service:     option.ServiceName,
				SeatsBooked: seatsNeeded,
			}
		}
	}
	return &TransportResult{
		Success:       false,
		FailureReason: fmt.Sprintf("No suitable transport available at %s", airport),
	}
}
