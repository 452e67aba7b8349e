// internal/interface/repository/advisor_repo.go
package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/pkg/logger"
)

// HTTPAdvisorRepository talks to the external policy advisor service
type HTTPAdvisorRepository struct {
	logger              logger.Logger
	client              *http.Client
	baseURL             string
	confidenceThreshold float64
}

// NewHTTPAdvisorRepository creates a new policy advisor repository. The
// client carries the OAuth transport when credentials are configured.
func NewHTTPAdvisorRepository(logger logger.Logger, client *http.Client, baseURL string, confidenceThreshold float64) repository.AdvisorRepository {
	return &HTTPAdvisorRepository{
		logger:              logger,
		client:              client,
		baseURL:             baseURL,
		confidenceThreshold: confidenceThreshold,
	}
}

type retrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type retrieveResponse struct {
	Results []entity.PolicyRecord `json:"results"`
}

// RetrievePolicy looks up the best-matching policy for a query. Results
// below the confidence threshold are replaced with the fallback record
// so callers always get an actionable policy.
func (r *HTTPAdvisorRepository) RetrievePolicy(ctx context.Context, query string) (*entity.PolicyRecord, error) {
	reqBody := retrieveRequest{Query: query, TopK: 1}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal retrieve request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/policies/retrieve", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var response retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode advisor response: %w", err)
	}

	if len(response.Results) == 0 {
		r.logger.Warn("Advisor returned no policies, using fallback", "query", query)
		return entity.FallbackPolicy(), nil
	}

	best := response.Results[0]
	if best.Score < r.confidenceThreshold {
		r.logger.Info("Advisor match below confidence threshold, using fallback",
			"policyId", best.PolicyID,
			"score", best.Score,
			"threshold", r.confidenceThreshold)
		return entity.FallbackPolicy(), nil
	}

	return &best, nil
}

type reasonRequest struct {
	Query   string                 `json:"query"`
	Context map[string]interface{} `json:"context"`
}

// Reason asks the advisor to narrate a decision. The response streams
// as newline-delimited text fragments; onChunk receives each fragment
// in order when non-nil.
func (r *HTTPAdvisorRepository) Reason(ctx context.Context, query string, reasonContext map[string]interface{}, onChunk func(string)) (*entity.Rationale, error) {
	reqBody := reasonRequest{Query: query, Context: reasonContext}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reason request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/reason", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var builder strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		chunk := scanner.Text()
		if chunk == "" {
			continue
		}
		if onChunk != nil {
			onChunk(chunk)
		}
		if builder.Len() > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read advisor stream: %w", err)
	}

	rationale := builder.String()
	if rationale == "" {
		rationale = entity.DefaultRationale
	}

	decision := ""
	if d, ok := reasonContext["decision"].(string); ok {
		decision = d
	}

	return &entity.Rationale{
		Decision:  decision,
		Rationale: rationale,
	}, nil
}
