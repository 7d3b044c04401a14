package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
)

// SQLiteFlightRecordRepository implements FlightRecordRepository on a local SQLite file
type SQLiteFlightRecordRepository struct {
	db *sql.DB
}

// NewSQLiteFlightRecordRepository creates a new SQLite flight record repository
func NewSQLiteFlightRecordRepository(ctx context.Context, db *sql.DB) (repository.FlightRecordRepository, error) {
	r := &SQLiteFlightRecordRepository{
		db: db,
	}

	if err := r.initDB(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// initDB initializes the database tables
func (r *SQLiteFlightRecordRepository) initDB(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS flight_schedules (
			record_key TEXT PRIMARY KEY,
			route TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			aircraft_type TEXT,
			schedule_summary TEXT,
			depart_time TEXT,
			arrive_time TEXT,
			depart_airport TEXT,
			arrive_airport TEXT,
			airline TEXT,
			origin_city TEXT NOT NULL,
			destination_city TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create flight_schedules table: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_flight_schedules_origin ON flight_schedules(origin_city)`)
	if err != nil {
		return fmt.Errorf("failed to create flight_schedules index: %w", err)
	}

	return nil
}

func (r *SQLiteFlightRecordRepository) Name() string {
	return "sqlite"
}

// SaveAll upserts every record by its key in a single transaction
func (r *SQLiteFlightRecordRepository) SaveAll(ctx context.Context, records []entity.FlightRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO flight_schedules
		(record_key, route, flight_number, aircraft_type, schedule_summary, depart_time, arrive_time,
		 depart_airport, arrive_airport, airline, origin_city, destination_city, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(record_key) DO UPDATE SET
			route = excluded.route,
			aircraft_type = excluded.aircraft_type,
			schedule_summary = excluded.schedule_summary,
			arrive_time = excluded.arrive_time,
			depart_airport = excluded.depart_airport,
			arrive_airport = excluded.arrive_airport,
			airline = excluded.airline,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.Key(),
			record.Route,
			record.FlightNumber,
			record.AircraftType,
			record.ScheduleSummary,
			record.DepartTime,
			record.ArriveTime,
			record.DepartAirport,
			record.ArriveAirport,
			record.Airline,
			string(record.OriginCity),
			string(record.DestinationCity),
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert flight record %s: %w", record.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flight records: %w", err)
	}

	return nil
}
