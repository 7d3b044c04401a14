package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
)

// CSVFlightRecordRepository writes the table to a single CSV file
type CSVFlightRecordRepository struct {
	path string
}

// NewCSVFlightRecordRepository creates a CSV sink writing to path
func NewCSVFlightRecordRepository(path string) repository.FlightRecordRepository {
	return &CSVFlightRecordRepository{
		path: path,
	}
}

func (r *CSVFlightRecordRepository) Name() string {
	return "csv"
}

// SaveAll replaces the file with a header row followed by one row per record.
// The file is written even when there are no records.
func (r *CSVFlightRecordRepository) SaveAll(ctx context.Context, records []entity.FlightRecord) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(entity.CSVHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range records {
		if i%1000 == 0 && ctx.Err() != nil {
			tmp.Close()
			return ctx.Err()
		}

		if err := w.Write(record.Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}
