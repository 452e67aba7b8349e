package usecase

import (
	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"
)

// SpareCriteria narrows the spare search. Empty fields are not filtered on.
type SpareCriteria struct {
	Role              string
	QualifiedAircraft string
	Exclude           []string
}

// SpareFinder selects replacement candidates from the roster. A nil
// return is the ordinary "no spare" outcome, never a failure.
type SpareFinder struct {
	logger logger.Logger
}

// NewSpareFinder creates a new spare finder
func NewSpareFinder(logger logger.Logger) *SpareFinder {
	return &SpareFinder{logger: logger}
}

// FindSpare returns the first unassigned, active roster entry matching
// the criteria, in roster iteration order.
func (f *SpareFinder) FindSpare(roster []*entity.CrewMember, criteria SpareCriteria) *entity.CrewMember {
	excluded := make(map[string]bool, len(criteria.Exclude))
	for _, id := range criteria.Exclude {
		excluded[id] = true
	}

	for _, member := range roster {
		if !member.IsSpare() {
			continue
		}
		if excluded[member.CrewID] {
			continue
		}
		if criteria.Role != "" && member.Role != criteria.Role {
			continue
		}
		if criteria.QualifiedAircraft != "" && member.QualifiedAircraft != criteria.QualifiedAircraft {
			continue
		}
		return member
	}
	return nil
}
