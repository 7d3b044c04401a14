// internal/domain/entity/flight_record.go
package entity

import "strings"

// CSVHeader lists the output column labels in FlightRecord.Row order
var CSVHeader = []string{
	"出发-到达",
	"航班号",
	"飞机型号",
	"航班日期",
	"起飞时间",
	"到达时间",
	"起飞机场",
	"落地机场",
	"航空公司",
}

// FlightRecord is one row of the aggregated schedule table
type FlightRecord struct {
	Route           string   `bson:"route"`
	FlightNumber    string   `bson:"flightNumber"`
	AircraftType    string   `bson:"aircraftType"`
	ScheduleSummary string   `bson:"scheduleSummary"`
	DepartTime      string   `bson:"departTime"`
	ArriveTime      string   `bson:"arriveTime"`
	DepartAirport   string   `bson:"departAirport"`
	ArriveAirport   string   `bson:"arriveAirport"`
	Airline         string   `bson:"airline"`
	OriginCity      CityCode `bson:"originCity"`      // not exported to CSV
	DestinationCity CityCode `bson:"destinationCity"` // not exported to CSV
}

// Row returns the CSV cells of the record, matching CSVHeader
func (r FlightRecord) Row() []string {
	return []string{
		r.Route,
		r.FlightNumber,
		r.AircraftType,
		r.ScheduleSummary,
		r.DepartTime,
		r.ArriveTime,
		r.DepartAirport,
		r.ArriveAirport,
		r.Airline,
	}
}

// Key identifies the record across runs: {origin}:{destination}:{flightNo}:{departTime}
func (r FlightRecord) Key() string {
	return strings.Join([]string{
		string(r.OriginCity),
		string(r.DestinationCity),
		r.FlightNumber,
		r.DepartTime,
	}, ":")
}
