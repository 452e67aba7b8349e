package usecase

import (
	"context"
	"fmt"
	"time"

	"crewrecovery-service/internal/domain/entity"
	"crewrecovery-service/internal/domain/repository"
	"crewrecovery-service/pkg/logger"
	"crewrecovery-service/pkg/metrics"
)

// DisruptionDispatcher manages disruption processing with multiple handlers
type DisruptionDispatcher struct {
	disruptionRepo repository.DisruptionRepository
	router         DisruptionRouter
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewDisruptionDispatcher creates a new disruption dispatcher
func NewDisruptionDispatcher(
	disruptionRepo repository.DisruptionRepository,
	router DisruptionRouter,
	m *metrics.Metrics,
	logger logger.Logger,
) *DisruptionDispatcher {
	return &DisruptionDispatcher{
		disruptionRepo: disruptionRepo,
		router:         router,
		metrics:        m,
		logger:         logger,
	}
}

// ProcessDisruption processes a single disruption event
func (d *DisruptionDispatcher) ProcessDisruption(ctx context.Context, disruption *entity.Disruption) error {
	handler := d.router.GetHandler(disruption.Type)
	if handler == nil {
		d.logger.Debug("No handler found for disruption",
			"type", disruption.Type,
			"disruptionId", disruption.ID)

		// Not an error, just no handler registered for this type
		return d.disruptionRepo.MarkAsProcessed(
			ctx,
			disruption.ID,
			entity.StatusSkipped,
			"none",
			"No matching handler found",
		)
	}

	handlerType := fmt.Sprintf("%T", handler)
	d.logger.Info("Processing disruption with handler",
		"disruptionId", disruption.ID,
		"handler", handlerType,
		"type", disruption.Type)

	if err := d.disruptionRepo.UpdateStatus(ctx, disruption.ID, entity.StatusProcessing, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if err := handler.Process(ctx, disruption); err != nil {
		d.logger.Error("Handler failed to process disruption",
			"disruptionId", disruption.ID,
			"handler", handlerType,
			"error", err)
		if d.metrics != nil {
			d.metrics.ErrorsCount.WithLabelValues("process_disruption").Inc()
		}

		// Mark as failed but don't return error - let other events continue
		d.disruptionRepo.MarkAsProcessed(
			ctx,
			disruption.ID,
			entity.StatusFailed,
			handlerType,
			err.Error(),
		)
		return nil
	}

	if err := d.disruptionRepo.MarkAsProcessed(ctx, disruption.ID, entity.StatusCompleted, handlerType, ""); err != nil {
		d.logger.Error("Failed to mark disruption as processed", "disruptionId", disruption.ID, "error", err)
	}
	if d.metrics != nil {
		d.metrics.DisruptionsProcessed.Inc()
	}

	d.logger.Info("Disruption processed successfully",
		"disruptionId", disruption.ID,
		"handler", handlerType)

	return nil
}

// ProcessPendingDisruptions processes any events that were missed or failed mid-flight
func (d *DisruptionDispatcher) ProcessPendingDisruptions(ctx context.Context) error {
	// Reset stale processing events
	if err := d.disruptionRepo.ResetProcessing(ctx); err != nil {
		d.logger.Error("Failed to reset stale disruptions", "error", err)
	}

	disruptions, err := d.disruptionRepo.FindUnprocessed(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to find unprocessed disruptions: %w", err)
	}

	if len(disruptions) == 0 {
		return nil
	}

	d.logger.Info("Processing pending disruptions", "count", len(disruptions))

	for _, disruption := range disruptions {
		if err := d.ProcessDisruption(ctx, disruption); err != nil {
			d.logger.Error("Failed to process pending disruption",
				"disruptionId", disruption.ID,
				"error", err)
		}
	}

	return nil
}
