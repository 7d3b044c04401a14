package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/internal/infrastructure/config"
	"schedule-crawler/internal/infrastructure/httpclient"
	"schedule-crawler/internal/infrastructure/persistence"
	"schedule-crawler/internal/infrastructure/router"
	crawlerRepo "schedule-crawler/internal/interface/repository"
	"schedule-crawler/internal/usecase"
	"schedule-crawler/pkg/logger"
	"schedule-crawler/pkg/metrics"
	"schedule-crawler/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Error("Failed to load config", "error", err)
		return 2
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	log.Info("Starting schedule crawler", "cities", cfg.CityCodes, "output", cfg.OutputPath)

	// Cancel the crawl on SIGINT/SIGTERM; whatever was collected is still exported
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics("schedule_crawler", reg)

	if cfg.MetricsAddr != "" {
		server := startMetricsServer(cfg.MetricsAddr, reg, log)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("Metrics server shutdown error", "error", err)
			}
		}()
	}

	// Set up sinks: the CSV file is mandatory, databases are opt-in
	sinks := router.NewSinkRouter(log)
	sinks.Register(crawlerRepo.NewCSVFlightRecordRepository(cfg.OutputPath), true)

	closers := registerDatabaseSinks(ctx, cfg, sinks, log)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	clientOpts := httpclient.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	}
	sessions := func(city entity.CityCode) usecase.CitySession {
		client := httpclient.NewClient(clientOpts)
		return usecase.CitySession{
			Listing:  crawlerRepo.NewCtripListingRepository(client, cfg.BaseURL),
			Schedule: crawlerRepo.NewCtripScheduleRepository(client, cfg.BaseURL),
			Close:    client.CloseIdleConnections,
		}
	}

	delay := utils.Delay{Min: cfg.JitterMin, Max: cfg.JitterMax}
	worker := usecase.NewCityWorker(sessions, cfg.PairWorkers, delay, log, m)
	orchestrator := usecase.NewOrchestrator(worker, sinks, cfg.CityWorkers, log, m)

	report, runErr := orchestrator.Run(ctx, cfg.CityCodes)

	for _, f := range report.Failures {
		log.Warn("Unit contributed no rows", "unit", f.Unit, "kind", f.Kind, "error", f.Err)
	}
	log.Info("Run summary",
		"records", report.Table.Len(),
		"failures", report.FailuresByKind(),
		"elapsed", report.Duration.Seconds())

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, reg); err != nil {
			log.Error("Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		log.Error("Crawl output could not be written", "error", runErr)
		return 1
	}

	return 0
}

func startMetricsServer(addr string, reg *prometheus.Registry, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Starting metrics server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server error", "error", err)
		}
	}()

	return server
}

// registerDatabaseSinks adds every configured database sink. A database that
// cannot be reached is logged and skipped.
func registerDatabaseSinks(ctx context.Context, cfg *config.Config, sinks *router.SinkRouter, log logger.Logger) []func() {
	var closers []func()

	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		if client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword); err != nil {
			log.Error("Failed to connect to MongoDB", "error", err)
		} else {
			closers = append(closers, func() { disconnectMongo(client, log) })
			registerOrLog(sinks, log, "mongodb", func() (repository.FlightRecordRepository, error) {
				return crawlerRepo.NewMongoFlightRecordRepository(ctx, db)
			})
		}
	}

	if cfg.PostgresDSN != "" {
		log.Info("Connecting to PostgreSQL")
		if db, err := persistence.NewPostgres(cfg.PostgresDSN); err != nil {
			log.Error("Failed to connect to PostgreSQL", "error", err)
		} else {
			closers = append(closers, func() { closePostgres(db, log) })
			registerOrLog(sinks, log, "postgres", func() (repository.FlightRecordRepository, error) {
				return crawlerRepo.NewGormFlightRecordRepository(db)
			})
		}
	}

	if cfg.SQLitePath != "" {
		log.Info("Opening SQLite database", "path", cfg.SQLitePath)
		if db, err := persistence.NewSQLite(cfg.SQLitePath); err != nil {
			log.Error("Failed to open SQLite database", "error", err)
		} else {
			closers = append(closers, func() { closeSQLite(db, log) })
			registerOrLog(sinks, log, "sqlite", func() (repository.FlightRecordRepository, error) {
				return crawlerRepo.NewSQLiteFlightRecordRepository(ctx, db)
			})
		}
	}

	return closers
}

func registerOrLog(sinks *router.SinkRouter, log logger.Logger, name string, open func() (repository.FlightRecordRepository, error)) {
	s, err := open()
	if err != nil {
		log.Error("Failed to prepare sink", "sink", name, "error", err)
		return
	}
	sinks.Register(s, false)
}

func disconnectMongo(client *mongo.Client, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
}

func closePostgres(db *gorm.DB, log logger.Logger) {
	if err := persistence.ClosePostgres(db); err != nil {
		log.Error("PostgreSQL close error", "error", err)
	}
}

func closeSQLite(db *sql.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Error("SQLite close error", "error", err)
	}
}
