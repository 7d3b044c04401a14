package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/infrastructure/persistence"
)

func sampleRecords() []entity.FlightRecord {
	return []entity.FlightRecord{
		{Route: "北京-上海", FlightNumber: "MU5100", AircraftType: "A330", ScheduleSummary: "周一", DepartTime: "07:00", ArriveTime: "09:10", DepartAirport: "首都国际机场", ArriveAirport: "虹桥国际机场", Airline: "东方航空", OriginCity: "BJS", DestinationCity: "SHA"},
		{Route: "北京-广州", FlightNumber: "CZ3100", AircraftType: "B787", ScheduleSummary: "周二, 周四", DepartTime: "08:00", ArriveTime: "11:20", DepartAirport: "大兴国际机场", ArriveAirport: "白云国际机场", Airline: "南方航空", OriginCity: "BJS", DestinationCity: "CAN"},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVFlightRecordRepository_SaveAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.csv")
	sink := NewCSVFlightRecordRepository(path)
	assert.Equal(t, "csv", sink.Name())

	require.NoError(t, sink.SaveAll(context.Background(), sampleRecords()))

	rows := readCSV(t, path)
	if assert.Len(t, rows, 3) {
		assert.Equal(t, entity.CSVHeader, rows[0])
		assert.Equal(t, []string{"北京-上海", "MU5100", "A330", "周一", "07:00", "09:10", "首都国际机场", "虹桥国际机场", "东方航空"}, rows[1])
	}
}

func TestCSVFlightRecordRepository_EmptyTableStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, NewCSVFlightRecordRepository(path).SaveAll(context.Background(), nil))

	assert.Equal(t, [][]string{entity.CSVHeader}, readCSV(t, path))
}

func TestSQLiteFlightRecordRepository_Upsert(t *testing.T) {
	db, err := persistence.NewSQLite(filepath.Join(t.TempDir(), "schedules.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	sink, err := NewSQLiteFlightRecordRepository(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", sink.Name())

	records := sampleRecords()
	require.NoError(t, sink.SaveAll(ctx, records))
	// second run with identical rows must not duplicate them
	require.NoError(t, sink.SaveAll(ctx, records))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flight_schedules WHERE origin_city = ?`, "BJS").Scan(&n))
	assert.Equal(t, 2, n)

	var summary string
	require.NoError(t, db.QueryRow(`SELECT schedule_summary FROM flight_schedules WHERE flight_number = ?`, "CZ3100").Scan(&summary))
	assert.Equal(t, "周二, 周四", summary)
}

func TestMongoFlightRecord_Document(t *testing.T) {
	record := sampleRecords()[0]
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	raw, err := bson.Marshal(mongoFlightRecord{FlightRecord: record, RecordKey: record.Key(), UpdatedAt: now})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Equal(t, "BJS:SHA:MU5100:07:00", doc["recordKey"])
	assert.Equal(t, "MU5100", doc["flightNumber"])
	assert.Equal(t, "周一", doc["scheduleSummary"])
	assert.Equal(t, "BJS", doc["originCity"])
	assert.Equal(t, "SHA", doc["destinationCity"])
	assert.NotContains(t, doc, "FlightRecord")
}
