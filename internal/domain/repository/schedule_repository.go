package repository

import (
	"context"

	"schedule-crawler/internal/domain/entity"
)

// ScheduleRepository defines the interface for the city pair schedule lookup
type ScheduleRepository interface {
	ByCityPair(ctx context.Context, origin, destination entity.CityCode) (*entity.ScheduleResponse, error)
}
