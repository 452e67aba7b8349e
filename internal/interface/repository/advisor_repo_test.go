package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return l
}

func newAdvisor(serverURL string, threshold float64) *HTTPAdvisorRepository {
	repo := NewHTTPAdvisorRepository(nopLogger{}, http.DefaultClient, serverURL, threshold)
	return repo.(*HTTPAdvisorRepository)
}

func TestRetrievePolicyConfidentMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/policies/retrieve", r.URL.Path)
		json.NewEncoder(w).Encode(retrieveResponse{Results: []entity.PolicyRecord{
			{PolicyID: "POL-001", Title: "Crew Duty Limits", Score: 0.87},
		}})
	}))
	defer server.Close()

	policy, err := newAdvisor(server.URL, 0.55).RetrievePolicy(context.Background(), "duty limits exceeded")
	require.NoError(t, err)
	assert.Equal(t, "POL-001", policy.PolicyID)
	assert.Equal(t, 0.87, policy.Score)
}

func TestRetrievePolicyLowConfidenceFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(retrieveResponse{Results: []entity.PolicyRecord{
			{PolicyID: "POL-001", Title: "Crew Duty Limits", Score: 0.31},
		}})
	}))
	defer server.Close()

	policy, err := newAdvisor(server.URL, 0.55).RetrievePolicy(context.Background(), "something unrelated")
	require.NoError(t, err)
	assert.Equal(t, "fallback", policy.PolicyID)
	assert.Equal(t, "General Escalation", policy.Title)
	assert.Equal(t, 0.0, policy.Score)
}

func TestRetrievePolicyNoResultsFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(retrieveResponse{})
	}))
	defer server.Close()

	policy, err := newAdvisor(server.URL, 0.55).RetrievePolicy(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "fallback", policy.PolicyID)
}

func TestRetrievePolicyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newAdvisor(server.URL, 0.55).RetrievePolicy(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRetrievePolicyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newAdvisor(server.URL, 0.55).RetrievePolicy(ctx, "anything")
	require.Error(t, err)
}

func TestReasonStreamsChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reason", r.URL.Path)
		w.Write([]byte("Crew exceeded duty limits.\nSpare assignment is the standard remedy.\n"))
	}))
	defer server.Close()

	var chunks []string
	rationale, err := newAdvisor(server.URL, 0.55).Reason(
		context.Background(),
		"why was the crew swapped",
		map[string]interface{}{"decision": "reassigned"},
		func(chunk string) { chunks = append(chunks, chunk) },
	)
	require.NoError(t, err)
	assert.Equal(t, "reassigned", rationale.Decision)
	assert.Equal(t, "Crew exceeded duty limits. Spare assignment is the standard remedy.", rationale.Rationale)
	assert.Equal(t, []string{"Crew exceeded duty limits.", "Spare assignment is the standard remedy."}, chunks)
}

func TestReasonEmptyStreamUsesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rationale, err := newAdvisor(server.URL, 0.55).Reason(context.Background(), "query", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultRationale, rationale.Rationale)
}
