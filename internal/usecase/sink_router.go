package usecase

import (
	"schedule-crawler/internal/domain/repository"
)

// SinkRouter holds the sinks the aggregated table is exported to
type SinkRouter interface {
	// Register adds a sink. A failing required sink fails the run.
	Register(sink repository.FlightRecordRepository, required bool)

	// Sinks returns the registered sinks in registration order
	Sinks() []RegisteredSink
}

// RegisteredSink is a sink plus its required flag
type RegisteredSink struct {
	Sink     repository.FlightRecordRepository
	Required bool
}
