package repository

import (
	"context"

	"crewrecovery-service/internal/domain/entity"
)

// AdvisorRepository defines the interface to the external policy advisor.
// Implementations must always return a valid record from RetrievePolicy:
// on any failure or low confidence the fallback policy is substituted,
// never nil and never an error the caller has to branch on.
type AdvisorRepository interface {
	RetrievePolicy(ctx context.Context, query string) (*entity.PolicyRecord, error)

	// Reason produces a human-readable narrative for a decision already
	// made by the rule engine. onChunk, when non-nil, receives ordered
	// narrative fragments as they stream in.
	Reason(ctx context.Context, query string, context map[string]interface{}, onChunk func(string)) (*entity.Rationale, error)
}

// NoticeRepository defines the interface for crew notifications
type NoticeRepository interface {
	Send(ctx context.Context, notice *entity.Notice) (string, error)
}
