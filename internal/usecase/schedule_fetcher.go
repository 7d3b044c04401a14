package usecase

import (
	"context"
	"fmt"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/pkg/logger"
	"schedule-crawler/pkg/metrics"
	"schedule-crawler/pkg/utils"
)

// ScheduleFetcher turns one origin-destination pair into flight records
type ScheduleFetcher struct {
	schedules repository.ScheduleRepository
	delay     utils.Delay
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewScheduleFetcher creates a fetcher on a city's schedule repository
func NewScheduleFetcher(
	schedules repository.ScheduleRepository,
	delay utils.Delay,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ScheduleFetcher {
	return &ScheduleFetcher{
		schedules: schedules,
		delay:     delay,
		logger:    logger,
		metrics:   metrics,
	}
}

// Fetch waits a random delay, looks up the pair's schedule and maps every
// entry to a record. Failures are logged and reported in the result; the
// result then carries no records. One malformed entry fails the whole pair.
func (f *ScheduleFetcher) Fetch(ctx context.Context, origin entity.CityCode, dest entity.Destination) entity.PairResult {
	result := entity.PairResult{Destination: dest}

	if err := f.delay.Sleep(ctx); err != nil {
		return f.fail(result, origin, err)
	}

	arrive, err := entity.ParseDestinationCode(dest.Link)
	if err != nil {
		return f.fail(result, origin, err)
	}

	resp, err := f.schedules.ByCityPair(ctx, origin, arrive)
	if err != nil {
		return f.fail(result, origin, err)
	}

	records := make([]entity.FlightRecord, 0, len(resp.ScheduleVOList))
	for i, entry := range resp.ScheduleVOList {
		if err := entry.Validate(); err != nil {
			return f.fail(result, origin, fmt.Errorf("entry %d: %w", i, err))
		}
		records = append(records, entry.ToRecord(origin, arrive, dest.Name))
	}
	result.Records = records

	f.logger.Info("Pair processed", "origin", origin, "pair", dest.Name, "records", len(records))
	f.metrics.PairsProcessed.WithLabelValues(metrics.StatusSucceeded).Inc()

	return result
}

func (f *ScheduleFetcher) fail(result entity.PairResult, origin entity.CityCode, err error) entity.PairResult {
	failure := entity.ClassifyFailure(string(origin)+" "+result.Destination.Name, err)
	result.Failure = &failure

	f.logger.Error("Failed to process pair",
		"origin", origin,
		"pair", result.Destination.Name,
		"link", result.Destination.Link,
		"kind", failure.Kind,
		"error", err)
	f.metrics.PairsProcessed.WithLabelValues(metrics.StatusFailed).Inc()

	return result
}
