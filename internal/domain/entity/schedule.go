// internal/domain/entity/schedule.go
package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// weekdayLabels maps schedule keys "1".."7" to their labels, Monday first
var weekdayLabels = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// ScheduleRequest is the body posted to the city pair schedule endpoint
type ScheduleRequest struct {
	ArriveCityCode    CityCode `json:"arriveCityCode"`
	DepartureCityCode CityCode `json:"departureCityCode"`
}

// ScheduleResponse is the body returned by the city pair schedule endpoint
type ScheduleResponse struct {
	ScheduleVOList []ScheduleEntry `json:"scheduleVOList"`
}

// ScheduleEntry represents one flight's weekly recurrence and metadata
type ScheduleEntry struct {
	FlightNo            string       `json:"flightNo"`
	AircraftType        string       `json:"aircraftType"`
	CurrentWeekSchedule WeekSchedule `json:"currentWeekSchedule"`
	DepartTime          string       `json:"departTime"`
	ArriveTime          string       `json:"arriveTime"`
	DepartPortName      string       `json:"departPortName"`
	ArrivePortName      string       `json:"arrivePortName"`
	AirlineCompanyName  string       `json:"airlineCompanyName"`
}

// Validate rejects entries without a flight number or a week schedule
func (e ScheduleEntry) Validate() error {
	if e.FlightNo == "" {
		return fmt.Errorf("%w: schedule entry without flightNo", ErrParse)
	}
	if e.CurrentWeekSchedule == nil {
		return fmt.Errorf("%w: flight %s without currentWeekSchedule", ErrParse, e.FlightNo)
	}
	return nil
}

// WeekSchedule marks the days a flight operates, keyed "1" (Monday) to "7" (Sunday)
type WeekSchedule map[string]bool

// ActiveDays returns the labels of the active days in Monday to Sunday order.
// Keys outside "1".."7" are ignored.
func (w WeekSchedule) ActiveDays() []string {
	days := make([]string, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		if w[strconv.Itoa(i+1)] {
			days = append(days, label)
		}
	}
	return days
}

// Summary joins the active day labels, e.g. "周一, 周三, 周日"
func (w WeekSchedule) Summary() string {
	return strings.Join(w.ActiveDays(), ", ")
}

// ToRecord converts the entry into a flight record for the given pair
func (e ScheduleEntry) ToRecord(origin, destination CityCode, routeLabel string) FlightRecord {
	return FlightRecord{
		Route:           routeLabel,
		FlightNumber:    e.FlightNo,
		AircraftType:    e.AircraftType,
		ScheduleSummary: e.CurrentWeekSchedule.Summary(),
		DepartTime:      e.DepartTime,
		ArriveTime:      e.ArriveTime,
		DepartAirport:   e.DepartPortName,
		ArriveAirport:   e.ArrivePortName,
		Airline:         e.AirlineCompanyName,
		OriginCity:      origin,
		DestinationCity: destination,
	}
}
