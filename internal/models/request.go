package models

import "strings"

type TripType string

const (
	OneWay    TripType = "one-way"
	RoundTrip TripType = "round-trip"
)

type SearchQuery struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    *string  `json:"return_date,omitempty"`
	Passengers    int      `json:"passengers"`
	TripType      TripType `json:"trip_type"`
}

// IsRoundTrip reports whether the return date should be sent to the provider.
func (q SearchQuery) IsRoundTrip() bool {
	return q.TripType == RoundTrip && q.ReturnDate != nil && *q.ReturnDate != ""
}

func (q *SearchQuery) Validate() error {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))

	if q.Origin == "" {
		return ErrMissingOrigin
	}
	if q.Destination == "" {
		return ErrMissingDestination
	}
	if q.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if q.Passengers <= 0 {
		q.Passengers = 1
	}
	switch q.TripType {
	case "":
		q.TripType = OneWay
	case OneWay, RoundTrip:
	default:
		return ErrInvalidTripType
	}
	if q.TripType == RoundTrip && (q.ReturnDate == nil || *q.ReturnDate == "") {
		return ErrMissingReturnDate
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrMissingReturnDate    ValidationError = "return_date is required for round-trip searches"
	ErrInvalidTripType      ValidationError = "trip_type must be one-way or round-trip"
)
