package router

import (
	"crewrecovery-service/internal/usecase"
	"crewrecovery-service/pkg/logger"
)

// DisruptionRouter routes disruption events to appropriate handlers based on type
type DisruptionRouter struct {
	handlers []usecase.DisruptionHandler
	logger   logger.Logger
}

// NewDisruptionRouter creates a new disruption router
func NewDisruptionRouter(logger logger.Logger) *DisruptionRouter {
	return &DisruptionRouter{
		handlers: make([]usecase.DisruptionHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific disruption types
func (r *DisruptionRouter) Register(handler usecase.DisruptionHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given disruption type
func (r *DisruptionRouter) GetHandler(disruptionType string) usecase.DisruptionHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(disruptionType) {
			return handler
		}
	}
	return nil
}
