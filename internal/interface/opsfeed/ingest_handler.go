package opsfeed

import (
	"encoding/json"
	"net/http"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/internal/usecase"
	"crewrecovery-service/pkg/logger"
)

// IngestHandler accepts disruption events pushed over HTTP, for ops
// systems that call in rather than exposing a feed to poll.
type IngestHandler struct {
	disruptionRepo repository.DisruptionRepository
	dispatcher     *usecase.DisruptionDispatcher
	logger         logger.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(
	disruptionRepo repository.DisruptionRepository,
	dispatcher *usecase.DisruptionDispatcher,
	logger logger.Logger,
) *IngestHandler {
	return &IngestHandler{
		disruptionRepo: disruptionRepo,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev feedEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	disruption, err := convertToDisruption(&ev)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	// Dedupe on event ID so retried pushes stay idempotent
	existing, err := h.disruptionRepo.FindByEventID(ctx, disruption.EventID)
	if err != nil {
		h.logger.Error("Failed to check existing event", "eventId", disruption.EventID, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"id": existing.ID, "status": existing.ProcessStatus},
		})
		return
	}

	if err := h.disruptionRepo.Save(ctx, disruption); err != nil {
		h.logger.Error("Failed to save disruption", "eventId", disruption.EventID, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	if err := h.dispatcher.ProcessDisruption(ctx, disruption); err != nil {
		h.logger.Error("Failed to process disruption", "eventId", disruption.EventID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    map[string]string{"id": disruption.ID, "status": entity.StatusPending},
	})
}
