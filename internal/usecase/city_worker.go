package usecase

import (
	"context"
	"fmt"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/pkg/logger"
	"schedule-crawler/pkg/metrics"
	"schedule-crawler/pkg/utils"
	"schedule-crawler/pkg/workpool"
)

// CitySession bundles the repositories sharing one HTTP session for a city
type CitySession struct {
	Listing  repository.ListingRepository
	Schedule repository.ScheduleRepository
	Close    func()
}

// SessionFactory opens a fresh session for a city
type SessionFactory func(city entity.CityCode) CitySession

// CityProcessor crawls a single origin city
type CityProcessor interface {
	Process(ctx context.Context, city entity.CityCode) entity.CityResult
}

// CityWorker expands a city into its destination pairs and fetches them
// on a bounded pool
type CityWorker struct {
	sessions    SessionFactory
	pairWorkers int
	delay       utils.Delay
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewCityWorker creates a new city worker
func NewCityWorker(
	sessions SessionFactory,
	pairWorkers int,
	delay utils.Delay,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *CityWorker {
	return &CityWorker{
		sessions:    sessions,
		pairWorkers: pairWorkers,
		delay:       delay,
		logger:      logger,
		metrics:     metrics,
	}
}

// Process reads the city's listing once and fetches every pair. A listing
// failure yields an empty result with one failure; pair failures only drop
// their own rows.
func (w *CityWorker) Process(ctx context.Context, city entity.CityCode) entity.CityResult {
	result := entity.CityResult{City: city}
	log := w.logger.With("city", city)

	log.Info("Processing city")

	session := w.sessions(city)
	if session.Close != nil {
		defer session.Close()
	}

	destinations, err := session.Listing.Destinations(ctx, city)
	if err != nil {
		failure := entity.ClassifyFailure(string(city), fmt.Errorf("failed to read listing: %w", err))
		result.Failures = append(result.Failures, failure)

		log.Error("Failed to read city listing", "kind", failure.Kind, "error", err)
		w.metrics.CitiesProcessed.Inc()
		return result
	}

	log.Info("City listing read", "pairs", len(destinations))
	result.Pairs = len(destinations)

	if len(destinations) == 0 {
		w.metrics.CitiesProcessed.Inc()
		return result
	}

	fetcher := NewScheduleFetcher(session.Schedule, w.delay, log, w.metrics)
	pairs := workpool.Run(ctx, w.pairWorkers, destinations, func(ctx context.Context, dest entity.Destination) entity.PairResult {
		return fetcher.Fetch(ctx, city, dest)
	})

	for r := range pairs {
		if r.Panic != nil {
			failure := entity.Failure{
				Unit: string(city) + " " + r.Input.Name,
				Kind: entity.FailureParse,
				Err:  r.Panic,
			}
			result.Failures = append(result.Failures, failure)

			log.Error("Pair task panicked", "pair", r.Input.Name, "error", r.Panic)
			w.metrics.PairsProcessed.WithLabelValues(metrics.StatusFailed).Inc()
			continue
		}

		if r.Value.Failure != nil {
			result.Failures = append(result.Failures, *r.Value.Failure)
			continue
		}

		result.Records = append(result.Records, r.Value.Records...)
	}

	log.Info("City processed",
		"pairs", result.Pairs,
		"records", len(result.Records),
		"failures", len(result.Failures))
	w.metrics.CitiesProcessed.Inc()

	return result
}
