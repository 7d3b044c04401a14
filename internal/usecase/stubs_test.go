package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"schedule-crawler/internal/domain/entity"
	"schedule-crawler/internal/domain/repository"
	"schedule-crawler/pkg/logger"
	"schedule-crawler/pkg/metrics"
	"schedule-crawler/pkg/utils"
)

var noDelay = utils.Delay{}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func testLogger() logger.Logger {
	return logger.NewNopLogger()
}

type stubListing struct {
	byCity map[entity.CityCode][]entity.Destination
	err    map[entity.CityCode]error
	calls  atomic.Int32
}

func (s *stubListing) Destinations(_ context.Context, origin entity.CityCode) ([]entity.Destination, error) {
	s.calls.Add(1)
	if err := s.err[origin]; err != nil {
		return nil, err
	}
	return s.byCity[origin], nil
}

// stubSchedule answers by destination code; entries listed in fail return a
// network error and entries in explode panic.
type stubSchedule struct {
	entries map[entity.CityCode][]entity.ScheduleEntry
	fail    map[entity.CityCode]bool
	explode map[entity.CityCode]bool

	mu    sync.Mutex
	pairs []string
}

func (s *stubSchedule) ByCityPair(_ context.Context, origin, destination entity.CityCode) (*entity.ScheduleResponse, error) {
	s.mu.Lock()
	s.pairs = append(s.pairs, string(origin)+"-"+string(destination))
	s.mu.Unlock()

	if s.explode[destination] {
		panic("unexpected payload")
	}
	if s.fail[destination] {
		return nil, fmt.Errorf("%w: connection reset", entity.ErrNetwork)
	}
	return &entity.ScheduleResponse{ScheduleVOList: s.entries[destination]}, nil
}

func sessionsOf(listing *stubListing, schedule *stubSchedule) SessionFactory {
	return func(entity.CityCode) CitySession {
		return CitySession{Listing: listing, Schedule: schedule}
	}
}

func entry(flightNo string) entity.ScheduleEntry {
	return entity.ScheduleEntry{
		FlightNo:            flightNo,
		AircraftType:        "A320",
		CurrentWeekSchedule: entity.WeekSchedule{"1": true, "3": true, "7": true},
		DepartTime:          "08:00",
		ArriveTime:          "10:00",
		DepartPortName:      "A",
		ArrivePortName:      "B",
		AirlineCompanyName:  "Airline",
	}
}

type memorySink struct {
	name    string
	err     error
	records []entity.FlightRecord
	saves   int
}

func (s *memorySink) Name() string { return s.name }

func (s *memorySink) SaveAll(_ context.Context, records []entity.FlightRecord) error {
	s.saves++
	if s.err != nil {
		return s.err
	}
	s.records = append([]entity.FlightRecord(nil), records...)
	return nil
}

type stubRouter struct {
	sinks []RegisteredSink
}

func (r *stubRouter) Register(sink repository.FlightRecordRepository, required bool) {
	r.sinks = append(r.sinks, RegisteredSink{Sink: sink, Required: required})
}

func (r *stubRouter) Sinks() []RegisteredSink { return r.sinks }

var errSinkDown = errors.New("sink down")
