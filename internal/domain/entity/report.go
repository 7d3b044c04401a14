package entity

import "time"

// PairResult is the contribution of one origin-destination pair
type PairResult struct {
	Destination Destination
	Records     []FlightRecord
	Failure     *Failure
}

// CityResult is the contribution of one origin city
type CityResult struct {
	City     CityCode
	Pairs    int
	Records  []FlightRecord
	Failures []Failure
}

// Table is the aggregated, unordered set of flight records of a run
type Table struct {
	Records []FlightRecord
}

// Append adds records to the table
func (t *Table) Append(records ...FlightRecord) {
	t.Records = append(t.Records, records...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Records)
}

// Report summarizes a whole crawl
type Report struct {
	Cities   []CityCode
	Table    Table
	Failures []Failure
	Duration time.Duration
}

// FailuresByKind counts the failures of each kind
func (r *Report) FailuresByKind() map[FailureKind]int {
	counts := make(map[FailureKind]int)
	for _, f := range r.Failures {
		counts[f.Kind]++
	}
	return counts
}
