package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/farewatch/internal/models"
)

func TestDurationMinutes(t *testing.T) {
	tests := map[string]int{
		"2h30m": 150,
		"45m":   45,
		"6h":    360,
		"1d2h":  26 * 60,
		"":      0,
		"h":     0,
		"30s":   0,
	}
	for in, want := range tests {
		assert.Equal(t, want, DurationMinutes(in), in)
	}
}

func TestCalculateScores(t *testing.T) {
	offers := []models.FlightOffer{
		{ID: "cheap-direct", Price: 100, Duration: "2h", Stops: 0},
		{ID: "pricey-direct", Price: 200, Duration: "2h", Stops: 0},
		{ID: "cheap-slow", Price: 100, Duration: "4h", Stops: 1},
	}

	scores := CalculateScores(offers)
	assert.Len(t, scores, 3)
	// 100/200*100*0.5 + 2/4*100*0.3
	assert.Equal(t, 40.0, scores[0])
	assert.Equal(t, 65.0, scores[1])
	// 25 + 30 + 15*0.2
	assert.Equal(t, 58.0, scores[2])
}

func TestCalculateScores_Empty(t *testing.T) {
	assert.Empty(t, CalculateScores(nil))
}
