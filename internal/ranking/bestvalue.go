// Package ranking scores offers so that cheap, short, direct flights rank first.
package ranking

import (
	"math"
	"strconv"

	"github.com/dharmasatrya/farewatch/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

// CalculateScores returns one score per offer, index-aligned with offers.
func CalculateScores(offers []models.FlightOffer) []float64 {
	scores := make([]float64, len(offers))
	if len(offers) == 0 {
		return scores
	}

	maxPrice := findMaxPrice(offers)
	maxDuration := findMaxDuration(offers)

	for i, o := range offers {
		scores[i] = CalculateBestValue(o, maxPrice, maxDuration)
	}
	return scores
}

// Lower score = better value
func CalculateBestValue(offer models.FlightOffer, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (offer.Price / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(DurationMinutes(offer.Duration)) / maxDuration) * 100
	}

	stopsScore := float64(offer.Stops) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}

// DurationMinutes reads a normalized duration such as "2h30m" or "1d2h".
// Unknown units and malformed input count as zero.
func DurationMinutes(d string) int {
	total, num := 0, ""
	for _, r := range d {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}
		n, err := strconv.Atoi(num)
		num = ""
		if err != nil {
			continue
		}
		switch r {
		case 'd':
			total += n * 24 * 60
		case 'h':
			total += n * 60
		case 'm':
			total += n
		}
	}
	return total
}

func findMaxPrice(offers []models.FlightOffer) float64 {
	maxPrice := 0.0
	for _, o := range offers {
		if o.Price > maxPrice {
			maxPrice = o.Price
		}
	}
	return maxPrice
}

func findMaxDuration(offers []models.FlightOffer) float64 {
	maxDuration := 0.0
	for _, o := range offers {
		dur := float64(DurationMinutes(o.Duration))
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}
