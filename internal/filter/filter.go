// Package filter narrows and orders normalized offers for display.
package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/ranking"
)

const (
	SortPrice     = "price"
	SortDuration  = "duration"
	SortDeparture = "departure"
	SortArrival   = "arrival"
	SortStops     = "stops"
	SortBestValue = "best_value"
)

type Options struct {
	PriceMax  *float64
	MaxStops  *int
	Airlines  []string
	SortBy    string
	SortOrder string
}

// Apply returns a new slice; offers is left untouched.
func Apply(offers []models.FlightOffer, opts Options) []models.FlightOffer {
	filtered := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if matches(o, opts) {
			filtered = append(filtered, o)
		}
	}
	return applySort(filtered, opts.SortBy, opts.SortOrder)
}

func matches(o models.FlightOffer, opts Options) bool {
	if opts.PriceMax != nil && o.Price > *opts.PriceMax {
		return false
	}
	if opts.MaxStops != nil && o.Stops > *opts.MaxStops {
		return false
	}
	if len(opts.Airlines) > 0 {
		found := false
		for _, airline := range opts.Airlines {
			if strings.EqualFold(o.Airline, airline) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func applySort(offers []models.FlightOffer, sortBy, sortOrder string) []models.FlightOffer {
	if len(offers) == 0 {
		return offers
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	var key func(o models.FlightOffer) float64
	switch strings.ToLower(sortBy) {
	case SortDuration:
		key = func(o models.FlightOffer) float64 { return float64(ranking.DurationMinutes(o.Duration)) }
	case SortStops:
		key = func(o models.FlightOffer) float64 { return float64(o.Stops) }
	case SortDeparture:
		return sortByString(offers, ascending, func(o models.FlightOffer) string {
			return o.Departure.Date + " " + o.Departure.Time
		})
	case SortArrival:
		return sortByString(offers, ascending, func(o models.FlightOffer) string {
			return o.Arrival.Date + " " + o.Arrival.Time
		})
	case SortBestValue:
		return sortByScore(offers, ascending)
	default:
		key = func(o models.FlightOffer) float64 { return o.Price }
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if ascending {
			return key(offers[i]) < key(offers[j])
		}
		return key(offers[i]) > key(offers[j])
	})
	return offers
}

func sortByString(offers []models.FlightOffer, ascending bool, key func(models.FlightOffer) string) []models.FlightOffer {
	sort.SliceStable(offers, func(i, j int) bool {
		if ascending {
			return key(offers[i]) < key(offers[j])
		}
		return key(offers[i]) > key(offers[j])
	})
	return offers
}

func sortByScore(offers []models.FlightOffer, ascending bool) []models.FlightOffer {
	scores := ranking.CalculateScores(offers)

	idx := make([]int, len(offers))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ascending {
			return scores[idx[a]] < scores[idx[b]]
		}
		return scores[idx[a]] > scores[idx[b]]
	})

	result := make([]models.FlightOffer, len(offers))
	for i, j := range idx {
		result[i] = offers[j]
	}
	return result
}
