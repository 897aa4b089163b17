// Package pricehistory fabricates a 31-day price chart around one live price
// sample. The series is a heuristic simulation, not fetched data.
package pricehistory

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/providers"
)

const (
	Days            = 31
	FallbackPrice   = 250.0
	sampleSize      = 5
	floorRatio      = 0.6
	weekendFactor   = 1.10
	summerFactor    = 1.15
	randomSpread    = 0.20
	nearUrgency     = 1.20
	farUrgency      = 1.10
	nearUrgencyDays = 7
	farUrgencyDays  = 14
	dateLayout      = "2006-01-02"
)

// RandomSource yields floats uniformly distributed in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type Synthesizer struct {
	offers providers.OfferSearcher
	rnd    RandomSource
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Synthesizer)

func WithRandom(r RandomSource) Option {
	return func(s *Synthesizer) { s.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Synthesizer) { s.logger = l }
}

func NewSynthesizer(offers providers.OfferSearcher, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		offers: offers,
		rnd:    globalRand{},
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize returns one point per day from 30 days ago through today,
// ascending by date. An empty slice means no history is available.
func (s *Synthesizer) Synthesize(ctx context.Context, origin, destination string) []models.PriceHistoryPoint {
	base := s.basePrice(ctx, origin, destination)

	points, err := s.generate(base)
	if err != nil {
		s.logger.Error("price history unavailable",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(err))
		return []models.PriceHistoryPoint{}
	}
	return points
}

// basePrice averages the totals of a few offers departing tomorrow. Any
// provider failure degrades to FallbackPrice.
func (s *Synthesizer) basePrice(ctx context.Context, origin, destination string) float64 {
	tomorrow := s.now().AddDate(0, 0, 1).Format(dateLayout)

	offers, err := s.offers.SearchOffers(ctx, models.SearchQuery{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: tomorrow,
		Passengers:    1,
		TripType:      models.OneWay,
	}, sampleSize)
	if err != nil {
		s.logger.Warn("price sample failed, using fallback base price",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(err))
		return FallbackPrice
	}

	var sum float64
	var n int
	for _, o := range offers {
		p, err := strconv.ParseFloat(o.Price.Total, 64)
		if err != nil {
			continue
		}
		sum += p
		n++
	}
	if n == 0 {
		return FallbackPrice
	}
	return sum / float64(n)
}

func (s *Synthesizer) generate(base float64) ([]models.PriceHistoryPoint, error) {
	if math.IsNaN(base) || math.IsInf(base, 0) || base < 0 {
		return nil, errors.New("base price is not a finite non-negative number")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	oldest := today.AddDate(0, 0, -(Days - 1))
	floor := math.Round(base * floorRatio)

	points := make([]models.PriceHistoryPoint, 0, Days)
	for i := 0; i < Days; i++ {
		day := oldest.AddDate(0, 0, i)

		price := math.Round(base *
			weekend(day) *
			seasonal(day) *
			s.jitter() *
			urgency(i))
		if price < floor {
			price = floor
		}

		points = append(points, models.PriceHistoryPoint{
			Date:  day.Format(dateLayout),
			Price: price,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}

func weekend(day time.Time) float64 {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return weekendFactor
	}
	return 1
}

func seasonal(day time.Time) float64 {
	if m := day.Month(); m >= time.June && m <= time.August {
		return summerFactor
	}
	return 1
}

func (s *Synthesizer) jitter() float64 {
	return 1 + (s.rnd.Float64()*2-1)*randomSpread
}

// urgency is keyed to the distance from the oldest day in the window, not
// from today.
func urgency(daysFromOldest int) float64 {
	switch {
	case daysFromOldest < nearUrgencyDays:
		return nearUrgency
	case daysFromOldest < farUrgencyDays:
		return farUrgency
	default:
		return 1
	}
}
