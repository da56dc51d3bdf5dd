package booking

import (
	"errors"
	"math"
	"strings"
)

const (
	MinPassengers = 1
	MaxPassengers = 6
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrPassengerCount = errors.New("passenger count out of range")
)

// ValidationError is a client-caused rejection. Message is safe to show to callers.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

// Validate checks required fields first, then the passenger range.
// Station names, dates, class and priority are accepted as given.
func Validate(req AnalyzeRequest) (BookingQuery, error) {
	q := BookingQuery{
		Source:      strings.TrimSpace(req.Source),
		Destination: strings.TrimSpace(req.Destination),
		TravelDate:  strings.TrimSpace(req.TravelDate),
		TravelClass: TravelClass(strings.TrimSpace(req.TravelClass)),
		Priority:    Priority(strings.TrimSpace(req.Priority)),
	}
	if q.Source == "" || q.Destination == "" || q.TravelDate == "" {
		return BookingQuery{}, &ValidationError{Kind: ErrMissingFields, Message: "Missing required fields"}
	}

	n := req.PassengerCount
	if n < MinPassengers || n > MaxPassengers || n != math.Trunc(n) {
		return BookingQuery{}, &ValidationError{Kind: ErrPassengerCount, Message: "Passenger count must be between 1 and 6"}
	}
	q.PassengerCount = int(n)
	return q, nil
}
