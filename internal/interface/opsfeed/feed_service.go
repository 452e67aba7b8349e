package opsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/internal/usecase"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedService polls the operations feed and processes disruption
// events immediately
type FeedService struct {
	client         *http.Client
	feedURL        string
	disruptionRepo repository.DisruptionRepository
	dispatcher     *usecase.DisruptionDispatcher
	logger         logger.Logger
	pollInterval   time.Duration
}

// NewFeedService creates a new ops feed service with dispatcher
func NewFeedService(
	client *http.Client,
	feedURL string,
	disruptionRepo repository.DisruptionRepository,
	dispatcher *usecase.DisruptionDispatcher,
	logger logger.Logger,
	pollInterval time.Duration,
) *FeedService {
	return &FeedService{
		client:         client,
		feedURL:        feedURL,
		disruptionRepo: disruptionRepo,
		dispatcher:     dispatcher,
		logger:         logger,
		pollInterval:   pollInterval,
	}
}

// feedEvent is the wire format of one event on the ops feed
type feedEvent struct {
	EventID      string `json:"event_id"`
	FlightID     string `json:"flight_id"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Severity     int    `json:"severity"`
	DelayMinutes int    `json:"delay_minutes"`
	ReportedAt   string `json:"reported_at"`
}

// StartPolling polls the ops feed and processes disruptions immediately
func (s *FeedService) StartPolling(ctx context.Context) {
	// Process any pending disruptions on startup
	if err := s.dispatcher.ProcessPendingDisruptions(ctx); err != nil {
		s.logger.Error("Failed to process pending disruptions on startup", "error", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Ops feed polling stopped")
			return
		case <-ticker.C:
			s.logger.Info("Polling ops feed for new disruptions")
			if err := s.FetchAndProcessEvents(ctx); err != nil {
				s.logger.Error("Error polling ops feed", "error", err)
			}
		}
	}
}

// FetchAndProcessEvents fetches new events and processes them immediately
func (s *FeedService) FetchAndProcessEvents(ctx context.Context) error {
	// Get last reported disruption timestamp
	lastDisruption, err := s.disruptionRepo.GetLastReported(ctx)
	if err != nil {
		s.logger.Error("Failed to get last disruption", "error", err)
	}

	var fetchFrom time.Time
	if lastDisruption != nil {
		fetchFrom = lastDisruption.ReportedAt
	} else {
		fetchFrom = time.Now().Add(-24 * time.Hour)
	}

	url := fmt.Sprintf("%s/api/v1/events?since=%s", s.feedURL, fetchFrom.UTC().Format(time.RFC3339))
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ops feed returned status %d", resp.StatusCode)
	}

	var events []feedEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return fmt.Errorf("failed to decode events: %w", err)
	}

	if len(events) == 0 {
		s.logger.Debug("No new events found")
		return nil
	}

	// Extract event IDs for batch checking
	eventIDs := make([]string, len(events))
	for i, ev := range events {
		eventIDs[i] = ev.EventID
	}

	// Check which events already exist
	existing, err := s.disruptionRepo.FindByEventIDs(ctx, eventIDs)
	if err != nil {
		s.logger.Error("Failed to check existing events", "error", err)
		existing = make(map[string]*entity.Disruption)
	}

	newCount := 0
	processedCount := 0

	for _, ev := range events {
		// Skip if already exists
		if _, exists := existing[ev.EventID]; exists {
			continue
		}

		disruption, err := convertToDisruption(&ev)
		if err != nil {
			s.logger.Error("Failed to convert event", "eventId", ev.EventID, "error", err)
			continue
		}

		if err := s.disruptionRepo.Save(ctx, disruption); err != nil {
			s.logger.Error("Failed to save disruption", "eventId", ev.EventID, "error", err)
			continue
		}
		newCount++

		// Process immediately
		if err := s.dispatcher.ProcessDisruption(ctx, disruption); err != nil {
			s.logger.Error("Failed to process disruption", "eventId", ev.EventID, "error", err)
		} else {
			processedCount++
		}
	}

	s.logger.Info("Event fetch and process completed",
		"totalEvents", len(events),
		"newEvents", newCount,
		"processedEvents", processedCount)

	return nil
}

// convertToDisruption converts a feed event to the domain entity
func convertToDisruption(ev *feedEvent) (*entity.Disruption, error) {
	if ev.EventID == "" || ev.FlightID == "" {
		return nil, fmt.Errorf("event missing required identifiers")
	}

	reportedAt := time.Now().UTC()
	if ev.ReportedAt != "" {
		parsed, err := utils.ParseTimestamp(ev.ReportedAt)
		if err != nil {
			return nil, fmt.Errorf("bad reported_at on event %s: %w", ev.EventID, err)
		}
		reportedAt = parsed
	}

	disruptionType := ev.Type
	if disruptionType == "" {
		disruptionType = entity.DisruptionOther
	}

	now := time.Now().UTC()
	return &entity.Disruption{
		ID:            primitive.NewObjectID().Hex(),
		EventID:       ev.EventID,
		FlightID:      ev.FlightID,
		Type:          disruptionType,
		Description:   ev.Description,
		Severity:      ev.Severity,
		DelayMinutes:  ev.DelayMinutes,
		ReportedAt:    reportedAt,
		ProcessStatus: entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
