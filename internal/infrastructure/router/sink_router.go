package router

import (
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/internal/usecase"
	"schedule-crawler/pkg/logger"
)

// SinkRouter routes the aggregated table to every registered sink
type SinkRouter struct {
	sinks  []usecase.RegisteredSink
	logger logger.Logger
}

// NewSinkRouter creates a new sink router
func NewSinkRouter(logger logger.Logger) *SinkRouter {
	return &SinkRouter{
		sinks:  make([]usecase.RegisteredSink, 0),
		logger: logger,
	}
}

// Register registers a sink
func (r *SinkRouter) Register(sink repository.FlightRecordRepository, required bool) {
	r.sinks = append(r.sinks, usecase.RegisteredSink{Sink: sink, Required: required})
	r.logger.Info("Registered sink", "sink", sink.Name(), "required", required)
}

// Sinks returns the registered sinks in registration order
func (r *SinkRouter) Sinks() []usecase.RegisteredSink {
	return r.sinks
}
