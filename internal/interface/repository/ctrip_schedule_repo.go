package repository

import (
	"context"
	"strings"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/internal/infrastructure/httpclient"
)

const schedulePath = "/schedule/getScheduleByCityPair"

// CtripScheduleRepository queries the city pair schedule endpoint
type CtripScheduleRepository struct {
	client  *httpclient.Client
	baseURL string
}

// NewCtripScheduleRepository creates a schedule repository on the given session
func NewCtripScheduleRepository(client *httpclient.Client, baseURL string) repository.ScheduleRepository {
	return &CtripScheduleRepository{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ByCityPair posts the pair and returns the decoded schedule list.
// A missing scheduleVOList decodes to an empty list.
func (r *CtripScheduleRepository) ByCityPair(ctx context.Context, origin, destination entity.CityCode) (*entity.ScheduleResponse, error) {
	payload := entity.ScheduleRequest{
		ArriveCityCode:    entity.NormalizeCityCode(string(destination)),
		DepartureCityCode: entity.NormalizeCityCode(string(origin)),
	}

	var resp entity.ScheduleResponse
	if err := r.client.PostJSON(ctx, r.baseURL+schedulePath, payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
