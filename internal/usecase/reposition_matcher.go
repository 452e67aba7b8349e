package usecase

import (
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"
)

// RepositionMatch is the outcome of a repositioning search. Option is nil
// when no flight meets the deadline; Deadline is always populated so the
// caller can reason about how close the miss was.
type RepositionMatch struct {
	Option   *entity.RepositioningFlight
	Deadline time.Time
}

// RepositionMatcher finds flights moving spare crew between bases
// against a reporting deadline.
type RepositionMatcher struct {
	logger logger.Logger
}

// NewRepositionMatcher creates a new reposition matcher
func NewRepositionMatcher(logger logger.Logger) *RepositionMatcher {
	return &RepositionMatcher{logger: logger}
}

// FindReposition selects from the pool the earliest-arriving flight on
// the route with seats available that lands before the reporting
// deadline. The deadline is the delay-adjusted departure minus the
// report buffer. A later-arriving but still on-time flight is strictly
// dominated, so earliest arrival both respects the deadline and
// maximizes slack.
func (m *RepositionMatcher) FindReposition(pool []*entity.RepositioningFlight, fromBase, toAirport string, schedDep time.Time, delayMinutes, reportBufferMinutes int) *RepositionMatch {
	projectedDep := schedDep.Add(time.Duration(delayMinutes) * time.Minute)
	deadline := projectedDep.Add(-time.Duration(reportBufferMinutes) * time.Minute)

	var best *entity.RepositioningFlight
	for _, option := range pool {
		if option.Origin != fromBase || option.Destination != toAirport {
			continue
		}
		if !option.SeatsAvailable {
			continue
		}
		if option.SchedArr.After(deadline) {
			continue
		}
		if best == nil || option.SchedArr.Before(best.SchedArr) {
			best = option
		}
	}

	return &RepositionMatch{Option: best, Deadline: deadline}
}

// ListRouteOptions returns every seat-available flight on the route
// without the deadline filter. This is the degenerate case of
// FindReposition with an infinite buffer, kept for callers that rank
// options themselves.
func (m *RepositionMatcher) ListRouteOptions(pool []*entity.RepositioningFlight, fromBase, toAirport string) []*entity.RepositioningFlight {
	var options []*entity.RepositioningFlight
	for _, option := range pool {
		if option.Origin == fromBase && option.Destination == toAirport && option.SeatsAvailable {
			options = append(options, option)
		}
	}
	return options
}
