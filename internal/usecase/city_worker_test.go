package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"schedule-crawler/internal/domain/entity"
)

func bjsListing() map[entity.CityCode][]entity.Destination {
	return map[entity.CityCode][]entity.Destination{
		"BJS": {
			{Name: "北京-上海", Link: "b.SHA.html"},
			{Name: "北京-广州", Link: "b.CAN.html"},
			{Name: "北京-成都", Link: "b.CTU.html"},
			{Name: "broken", Link: "nodots"},
		},
	}
}

func TestCityWorker_PairIsolation(t *testing.T) {
	listing := &stubListing{byCity: bjsListing()}
	schedule := &stubSchedule{
		entries: map[entity.CityCode][]entity.ScheduleEntry{
			"SHA": {entry("MU1"), entry("MU2")},
			"CAN": {entry("CZ1")},
			"CTU": {entry("CA1")},
		},
		fail: map[entity.CityCode]bool{"CAN": true},
	}

	w := NewCityWorker(sessionsOf(listing, schedule), 8, noDelay, testLogger(), testMetrics())
	result := w.Process(context.Background(), "BJS")

	assert.Equal(t, entity.CityCode("BJS"), result.City)
	assert.Equal(t, 4, result.Pairs)
	assert.ElementsMatch(t, []string{"MU1", "MU2", "CA1"}, flightNumbers(result.Records))

	kinds := map[entity.FailureKind]int{}
	for _, f := range result.Failures {
		kinds[f.Kind]++
	}
	assert.Equal(t, map[entity.FailureKind]int{entity.FailureNetwork: 1, entity.FailureParse: 1}, kinds)
}

func TestCityWorker_PanickingPairIsIsolated(t *testing.T) {
	listing := &stubListing{byCity: bjsListing()}
	schedule := &stubSchedule{
		entries: map[entity.CityCode][]entity.ScheduleEntry{
			"SHA": {entry("MU1")},
			"CTU": {entry("CA1")},
		},
		explode: map[entity.CityCode]bool{"CAN": true},
	}

	w := NewCityWorker(sessionsOf(listing, schedule), 2, noDelay, testLogger(), testMetrics())
	result := w.Process(context.Background(), "BJS")

	assert.ElementsMatch(t, []string{"MU1", "CA1"}, flightNumbers(result.Records))
	assert.Len(t, result.Failures, 2)
}

func TestCityWorker_ListingFailure(t *testing.T) {
	listing := &stubListing{err: map[entity.CityCode]error{
		"SHA": fmt.Errorf("%w: timeout", entity.ErrNetwork),
	}}
	schedule := &stubSchedule{}

	w := NewCityWorker(sessionsOf(listing, schedule), 8, noDelay, testLogger(), testMetrics())
	result := w.Process(context.Background(), "SHA")

	assert.Empty(t, result.Records)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, entity.FailureNetwork, result.Failures[0].Kind)
		assert.Equal(t, "SHA", result.Failures[0].Unit)
	}
	assert.Empty(t, schedule.pairs)
}

func TestCityWorker_EmptyListing(t *testing.T) {
	schedule := &stubSchedule{}
	w := NewCityWorker(sessionsOf(&stubListing{}, schedule), 8, noDelay, testLogger(), testMetrics())

	result := w.Process(context.Background(), "URC")

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Failures)
	assert.Zero(t, result.Pairs)
	assert.Empty(t, schedule.pairs)
}

func TestCityWorker_SessionPerCityIsClosed(t *testing.T) {
	var opened, closed []entity.CityCode
	sessions := func(city entity.CityCode) CitySession {
		opened = append(opened, city)
		return CitySession{
			Listing:  &stubListing{err: map[entity.CityCode]error{city: errors.New("blocked")}},
			Schedule: &stubSchedule{},
			Close:    func() { closed = append(closed, city) },
		}
	}

	w := NewCityWorker(sessions, 8, noDelay, testLogger(), testMetrics())
	w.Process(context.Background(), "HRB")

	assert.Equal(t, []entity.CityCode{"HRB"}, opened)
	assert.Equal(t, []entity.CityCode{"HRB"}, closed)
}

func flightNumbers(records []entity.FlightRecord) []string {
	numbers := make([]string, 0, len(records))
	for _, r := range records {
		numbers = append(numbers, r.FlightNumber)
	}
	return numbers
}
