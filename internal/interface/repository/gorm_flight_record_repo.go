package repository

import (
	"context"
	"fmt"
	"time"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFlightRecordRepository implements FlightRecordRepository on PostgreSQL via GORM
type GormFlightRecordRepository struct {
	db *gorm.DB
}

// FlightSchedules GORM model for database mapping
type FlightSchedules struct {
	ID              uint   `gorm:"primaryKey"`
	RecordKey       string `gorm:"column:record_key;uniqueIndex"`
	Route           string `gorm:"column:route"`
	FlightNumber    string `gorm:"column:flight_number;index"`
	AircraftType    string `gorm:"column:aircraft_type"`
	ScheduleSummary string `gorm:"column:schedule_summary"`
	DepartTime      string `gorm:"column:depart_time"`
	ArriveTime      string `gorm:"column:arrive_time"`
	DepartAirport   string `gorm:"column:depart_airport"`
	ArriveAirport   string `gorm:"column:arrive_airport"`
	Airline         string `gorm:"column:airline"`
	OriginCity      string `gorm:"column:origin_city;index"`
	DestinationCity string `gorm:"column:destination_city"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (FlightSchedules) TableName() string {
	return "flight_schedules"
}

// NewGormFlightRecordRepository creates a new GORM flight record repository and migrates its table
func NewGormFlightRecordRepository(db *gorm.DB) (repository.FlightRecordRepository, error) {
	if err := db.AutoMigrate(&FlightSchedules{}); err != nil {
		return nil, fmt.Errorf("failed to migrate flight_schedules: %w", err)
	}

	return &GormFlightRecordRepository{
		db: db,
	}, nil
}

func (r *GormFlightRecordRepository) Name() string {
	return "postgres"
}

// SaveAll upserts every record by its key
func (r *GormFlightRecordRepository) SaveAll(ctx context.Context, records []entity.FlightRecord) error {
	if len(records) == 0 {
		return nil
	}

	// A single INSERT ... ON CONFLICT may not touch the same key twice
	byKey := make(map[string]int, len(records))

	// Convert domain entities to GORM models
	rows := make([]FlightSchedules, 0, len(records))
	for _, record := range records {
		row := FlightSchedules{
			RecordKey:       record.Key(),
			Route:           record.Route,
			FlightNumber:    record.FlightNumber,
			AircraftType:    record.AircraftType,
			ScheduleSummary: record.ScheduleSummary,
			DepartTime:      record.DepartTime,
			ArriveTime:      record.ArriveTime,
			DepartAirport:   record.DepartAirport,
			ArriveAirport:   record.ArriveAirport,
			Airline:         record.Airline,
			OriginCity:      string(record.OriginCity),
			DestinationCity: string(record.DestinationCity),
		}

		if i, ok := byKey[row.RecordKey]; ok {
			rows[i] = row
			continue
		}
		byKey[row.RecordKey] = len(rows)
		rows = append(rows, row)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"route", "flight_number", "aircraft_type", "schedule_summary",
				"depart_time", "arrive_time", "depart_airport", "arrive_airport",
				"airline", "origin_city", "destination_city", "updated_at",
			}),
		}).
		CreateInBatches(&rows, 200)

	if result.Error != nil {
		return fmt.Errorf("failed to upsert flight records: %w", result.Error)
	}

	return nil
}
