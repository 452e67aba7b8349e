package usecase

import (
	"testing"
	"time"

	"crewrecovery-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoFlight(id, origin, destination string, dep, arr time.Time, seats bool) *entity.RepositioningFlight {
	return &entity.RepositioningFlight{
		FlightID:       id,
		Origin:         origin,
		Destination:    destination,
		SchedDep:       dep,
		SchedArr:       arr,
		SeatsAvailable: seats,
	}
}

func TestFindRepositionPicksEarliestArrival(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	pool := []*entity.RepositioningFlight{
		repoFlight("RP002", "DEN", "ORD",
			schedDep.Add(-6*time.Hour), schedDep.Add(-2*time.Hour), true),
		repoFlight("RP001", "DEN", "ORD",
			schedDep.Add(-8*time.Hour), schedDep.Add(-4*time.Hour), true),
	}

	match := matcher.FindReposition(pool, "DEN", "ORD", schedDep, 120, 60)
	require.NotNil(t, match.Option)
	assert.Equal(t, "RP001", match.Option.FlightID)
}

func TestFindRepositionDeadlineIsDelayAdjusted(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	match := matcher.FindReposition(nil, "DEN", "ORD", schedDep, 120, 60)
	// deadline = dep + delay - buffer
	assert.Equal(t, schedDep.Add(120*time.Minute).Add(-60*time.Minute), match.Deadline)
	assert.Nil(t, match.Option)
}

func TestFindRepositionDelayOpensTheWindow(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	// Arrives 30 minutes after the undelayed deadline
	late := repoFlight("RP001", "DEN", "ORD",
		schedDep.Add(-4*time.Hour), schedDep.Add(-30*time.Minute), true)
	pool := []*entity.RepositioningFlight{late}

	noDelay := matcher.FindReposition(pool, "DEN", "ORD", schedDep, 0, 60)
	assert.Nil(t, noDelay.Option)

	withDelay := matcher.FindReposition(pool, "DEN", "ORD", schedDep, 120, 60)
	require.NotNil(t, withDelay.Option)
	assert.Equal(t, "RP001", withDelay.Option.FlightID)
}

func TestFindRepositionSkipsFullAndOffRouteFlights(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	pool := []*entity.RepositioningFlight{
		repoFlight("RP001", "DEN", "ORD",
			schedDep.Add(-8*time.Hour), schedDep.Add(-4*time.Hour), false),
		repoFlight("RP002", "DEN", "LAX",
			schedDep.Add(-8*time.Hour), schedDep.Add(-4*time.Hour), true),
		repoFlight("RP003", "SFO", "ORD",
			schedDep.Add(-8*time.Hour), schedDep.Add(-4*time.Hour), true),
	}

	match := matcher.FindReposition(pool, "DEN", "ORD", schedDep, 0, 60)
	assert.Nil(t, match.Option)
}

func TestFindRepositionArrivalExactlyAtDeadline(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	deadline := schedDep.Add(-60 * time.Minute)
	exact := repoFlight("RP001", "DEN", "ORD", deadline.Add(-3*time.Hour), deadline, true)

	match := matcher.FindReposition([]*entity.RepositioningFlight{exact}, "DEN", "ORD", schedDep, 0, 60)
	require.NotNil(t, match.Option)
	assert.Equal(t, "RP001", match.Option.FlightID)
}

func TestListRouteOptions(t *testing.T) {
	matcher := NewRepositionMatcher(nopLogger{})
	schedDep := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	pool := []*entity.RepositioningFlight{
		repoFlight("RP001", "DEN", "ORD", schedDep, schedDep.Add(2*time.Hour), true),
		repoFlight("RP002", "DEN", "ORD", schedDep, schedDep.Add(2*time.Hour), false),
		repoFlight("RP003", "DEN", "LAX", schedDep, schedDep.Add(2*time.Hour), true),
	}

	options := matcher.ListRouteOptions(pool, "DEN", "ORD")
	require.Len(t, options, 1)
	assert.Equal(t, "RP001", options[0].FlightID)
}
