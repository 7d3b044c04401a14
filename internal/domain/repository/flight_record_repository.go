package repository

import (
	"context"

	"schedule-crawler/internal/domain/entity"
)

// FlightRecordRepository defines the interface for persisting the aggregated table
type FlightRecordRepository interface {
	Name() string
	SaveAll(ctx context.Context, records []entity.FlightRecord) error
}
