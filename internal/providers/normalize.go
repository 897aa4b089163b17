package providers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dharmasatrya/farewatch/internal/models"
)

var ErrMalformedOffer = errors.New("malformed offer")

// NormalizeOffer maps one raw offer to the canonical model. Only the first
// itinerary is read; a return leg, if any, is dropped. index seeds the id of
// offers that arrive without one.
func NormalizeOffer(raw Offer, index int) (models.FlightOffer, error) {
	if len(raw.Itineraries) == 0 {
		return models.FlightOffer{}, fmt.Errorf("%w: no itineraries", ErrMalformedOffer)
	}
	itinerary := raw.Itineraries[0]
	if len(itinerary.Segments) == 0 {
		return models.FlightOffer{}, fmt.Errorf("%w: first itinerary has no segments", ErrMalformedOffer)
	}

	price, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return models.FlightOffer{}, fmt.Errorf("%w: price %q: %v", ErrMalformedOffer, raw.Price.Total, err)
	}

	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	id := raw.ID
	if id == "" {
		id = "flight-" + strconv.Itoa(index)
	}

	var aircraft *string
	if first.Aircraft != nil && first.Aircraft.Code != "" {
		a := first.Aircraft.Code
		aircraft = &a
	}

	return models.FlightOffer{
		ID:           id,
		Airline:      first.CarrierCode,
		FlightNumber: first.CarrierCode + " " + first.Number,
		Departure: models.Endpoint{
			Airport: first.Departure.IATACode,
			Time:    clockPart(first.Departure.At),
			Date:    datePart(first.Departure.At),
		},
		Arrival: models.Endpoint{
			Airport: last.Arrival.IATACode,
			Time:    clockPart(last.Arrival.At),
			Date:    datePart(last.Arrival.At),
		},
		Duration: formatDuration(itinerary.Duration),
		Stops:    len(itinerary.Segments) - 1,
		Price:    price,
		Currency: raw.Price.Currency,
		Aircraft: aircraft,
	}, nil
}

// formatDuration turns "PT2H30M" into "2h30m".
func formatDuration(d string) string {
	return strings.ToLower(strings.TrimPrefix(d, "PT"))
}

// datePart returns YYYY-MM-DD from "2024-06-01T08:00:00".
func datePart(at string) string {
	if len(at) < 10 {
		return at
	}
	return at[:10]
}

// clockPart returns HH:MM from "2024-06-01T08:00:00".
func clockPart(at string) string {
	i := strings.IndexByte(at, 'T')
	if i < 0 || len(at) < i+6 {
		return ""
	}
	return at[i+1 : i+6]
}
