package usecase

import (
	"fmt"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/utils"
)

// LegalityResult is the outcome of a duty-legality check for one crew member.
type LegalityResult struct {
	Legal                bool
	Reason               string
	RemainingDutyMinutes int
}

// LegalityChecker decides duty legality against configured duty-time
// and rest-time limits. It has no side effects and no hidden state.
type LegalityChecker struct {
	rules  entity.DutyRules
	logger logger.Logger
}

// NewLegalityChecker creates a new legality checker. The rules are
// expected to have been validated at configuration load.
func NewLegalityChecker(rules entity.DutyRules, logger logger.Logger) *LegalityChecker {
	return &LegalityChecker{
		rules:  rules,
		logger: logger,
	}
}

// CheckLegality checks one crew member against the planned duty window.
// Timestamps accept ISO-8601 or the "YYYY-MM-DD HH:MM" fallback format;
// anything else returns an error wrapping utils.ErrMalformedTimestamp.
// A crew ID absent from the roster is an illegal result, not an error.
func (c *LegalityChecker) CheckLegality(crewID, plannedStart, plannedEnd string, roster []*entity.CrewMember) (*LegalityResult, error) {
	startTime, err := utils.ParseTimestamp(plannedStart)
	if err != nil {
		return nil, fmt.Errorf("planned start: %w", err)
	}
	endTime, err := utils.ParseTimestamp(plannedEnd)
	if err != nil {
		return nil, fmt.Errorf("planned end: %w", err)
	}
	return c.CheckWindow(crewID, startTime, endTime, roster)
}

// CheckWindow checks one crew member against a typed duty window. The
// window keeps its full resolution and zone; only the stored previous
// duty end still goes through the timestamp parser.
func (c *LegalityChecker) CheckWindow(crewID string, start, end time.Time, roster []*entity.CrewMember) (*LegalityResult, error) {
	var crew *entity.CrewMember
	for _, member := range roster {
		if member.CrewID == crewID {
			crew = member
			break
		}
	}
	if crew == nil {
		return &LegalityResult{
			Legal:  false,
			Reason: fmt.Sprintf("Crew %s not found", crewID),
		}, nil
	}

	dutyDuration := end.Sub(start).Hours()
	maxDuty := float64(c.rules.MaxDutyHours)

	if dutyDuration > maxDuty {
		return &LegalityResult{
			Legal:  false,
			Reason: fmt.Sprintf("Duty period %.1fh exceeds maximum %dh", dutyDuration, c.rules.MaxDutyHours),
		}, nil
	}

	if crew.DutyEnd != nil && *crew.DutyEnd != "" {
		prevDutyEnd, err := utils.ParseTimestamp(*crew.DutyEnd)
		if err != nil {
			return nil, fmt.Errorf("duty end of crew %s: %w", crewID, err)
		}
		restDuration := start.Sub(prevDutyEnd).Hours()
		if restDuration < float64(c.rules.MinRestHours) {
			return &LegalityResult{
				Legal:  false,
				Reason: fmt.Sprintf("Rest period %.1fh below minimum %dh", restDuration, c.rules.MinRestHours),
			}, nil
		}
	}

	return &LegalityResult{
		Legal:                true,
		Reason:               "Within duty limits",
		RemainingDutyMinutes: int((maxDuty - dutyDuration) * 60),
	}, nil
}
