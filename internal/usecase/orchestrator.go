package usecase

import (
	"context"
	"fmt"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/pkg/logger"
	"schedule-crawler/pkg/metrics"
	"schedule-crawler/pkg/workpool"
)

// Orchestrator crawls a set of cities on a bounded pool, merges their rows
// and exports the table once
type Orchestrator struct {
	worker      CityProcessor
	router      SinkRouter
	cityWorkers int
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	worker CityProcessor,
	router SinkRouter,
	cityWorkers int,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Orchestrator {
	return &Orchestrator{
		worker:      worker,
		router:      router,
		cityWorkers: cityWorkers,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run crawls the given cities and exports the merged table. The returned
// report is always non-nil; the error is set only when a required sink
// could not be written.
func (o *Orchestrator) Run(ctx context.Context, rawCities []string) (*entity.Report, error) {
	start := time.Now()

	report := &entity.Report{
		Cities: entity.NormalizeCityCodes(rawCities),
	}

	o.logger.Info("Starting crawl", "cities", report.Cities, "cityWorkers", o.cityWorkers)

	o.crawl(ctx, report)
	err := o.export(ctx, report)

	report.Duration = time.Since(start)
	o.record(report)

	o.logger.Info("Crawl finished",
		"cities", len(report.Cities),
		"records", report.Table.Len(),
		"failures", len(report.Failures),
		"duration", report.Duration)

	return report, err
}

// crawl merges city results in completion order. Only this goroutine
// touches report.
func (o *Orchestrator) crawl(ctx context.Context, report *entity.Report) {
	results := workpool.Run(ctx, o.cityWorkers, report.Cities, o.worker.Process)

	for r := range results {
		if r.Panic != nil {
			failure := entity.Failure{
				Unit: string(r.Input),
				Kind: entity.FailureMerge,
				Err:  r.Panic,
			}
			report.Failures = append(report.Failures, failure)

			o.logger.Error("Failed to merge city result", "city", r.Input, "error", r.Panic)
			continue
		}

		report.Table.Append(r.Value.Records...)
		report.Failures = append(report.Failures, r.Value.Failures...)

		o.logger.Debug("City merged", "city", r.Input, "records", len(r.Value.Records), "total", report.Table.Len())
	}
}

// export writes the table even if ctx was cancelled during the crawl
func (o *Orchestrator) export(ctx context.Context, report *entity.Report) error {
	ctx = context.WithoutCancel(ctx)
	var requiredErr error

	for _, registered := range o.router.Sinks() {
		sink := registered.Sink
		start := time.Now()

		err := sink.SaveAll(ctx, report.Table.Records)
		o.metrics.ExportDuration.WithLabelValues(sink.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			report.Failures = append(report.Failures, entity.Failure{
				Unit: sink.Name(),
				Kind: entity.FailureExport,
				Err:  err,
			})
			o.logger.Error("Failed to export table", "sink", sink.Name(), "required", registered.Required, "error", err)

			if registered.Required && requiredErr == nil {
				requiredErr = fmt.Errorf("failed to export to %s: %w", sink.Name(), err)
			}
			continue
		}

		o.logger.Info("Table exported", "sink", sink.Name(), "records", report.Table.Len())
	}

	return requiredErr
}

func (o *Orchestrator) record(report *entity.Report) {
	o.metrics.RecordsCollected.Add(float64(report.Table.Len()))
	o.metrics.RunDuration.Observe(report.Duration.Seconds())

	for kind, n := range report.FailuresByKind() {
		o.metrics.FailuresCount.WithLabelValues(string(kind)).Add(float64(n))
	}
}
