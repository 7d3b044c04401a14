package repository

import (
	"context"

	"schedule-crawler/internal/domain/entity"
)

// ListingRepository defines the interface for reading a city's destination listing
type ListingRepository interface {
	Destinations(ctx context.Context, origin entity.CityCode) ([]entity.Destination, error)
}
