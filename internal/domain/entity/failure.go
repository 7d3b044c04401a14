package entity

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport errors, timeouts and unexpected status codes
	ErrNetwork = errors.New("network failure")
	// ErrParse wraps malformed HTML, JSON or listing links
	ErrParse = errors.New("parse failure")
)

// FailureKind classifies a failed unit of work
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureParse   FailureKind = "parse"
	FailureMerge   FailureKind = "merge"
	FailureExport  FailureKind = "export"

	// FailureCancelled marks units interrupted by shutdown before they finished
	FailureCancelled FailureKind = "cancelled"
)

// Failure is a diagnostic entry for a unit of work that contributed no rows
type Failure struct {
	Unit string
	Kind FailureKind
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Unit, f.Kind, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// ClassifyFailure builds a Failure for unit, deriving the kind from err.
// Context cancellation counts as cancelled; any other error that is not a
// network failure counts as a parse failure.
func ClassifyFailure(unit string, err error) Failure {
	kind := FailureParse
	switch {
	case errors.Is(err, ErrNetwork):
		kind = FailureNetwork
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = FailureCancelled
	}

	return Failure{Unit: unit, Kind: kind, Err: err}
}
