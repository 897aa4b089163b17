// Package search is the single entry point the presentation layer calls. It
// composes the provider client, the normalizer, the location resolver and
// the price-history synthesizer.
package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/cache"
	"github.com/dharmasatrya/farewatch/internal/locations"
	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/pricehistory"
	"github.com/dharmasatrya/farewatch/internal/providers"
)

const DefaultMaxOffers = 50

type Config struct {
	MaxOffers int
	Cache     cache.Cache
	Logger    *zap.Logger
}

type Facade struct {
	offers    providers.OfferSearcher
	locations *locations.Resolver
	history   *pricehistory.Synthesizer
	cache     cache.Cache
	maxOffers int
	logger    *zap.Logger
}

func NewFacade(
	offers providers.OfferSearcher,
	resolver *locations.Resolver,
	history *pricehistory.Synthesizer,
	cfg Config,
) *Facade {
	f := &Facade{
		offers:    offers,
		locations: resolver,
		history:   history,
		cache:     cfg.Cache,
		maxOffers: cfg.MaxOffers,
		logger:    cfg.Logger,
	}
	if f.cache == nil {
		f.cache = cache.NewNoOpCache()
	}
	if f.maxOffers <= 0 {
		f.maxOffers = DefaultMaxOffers
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// SearchFlights returns the normalized offers for q. The result is never nil.
// Provider, authentication and network failures are returned unchanged.
func (f *Facade) SearchFlights(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if cached, ok := f.cache.Get(ctx, q); ok {
		f.logger.Debug("search served from cache",
			zap.String("origin", q.Origin),
			zap.String("destination", q.Destination))
		return cached, nil
	}

	raw, err := f.offers.SearchOffers(ctx, q, f.maxOffers)
	if err != nil {
		f.logger.Warn("flight search failed",
			zap.String("origin", q.Origin),
			zap.String("destination", q.Destination),
			zap.Error(err))
		return nil, err
	}

	offers := make([]models.FlightOffer, 0, len(raw))
	for i, r := range raw {
		offer, err := providers.NormalizeOffer(r, i)
		if err != nil {
			f.logger.Warn("skipping offer", zap.Int("index", i), zap.String("id", r.ID), zap.Error(err))
			continue
		}
		offers = append(offers, offer)
	}

	if err := f.cache.Set(ctx, q, offers); err != nil {
		f.logger.Warn("failed to cache search results", zap.Error(err))
	}
	return offers, nil
}

// PriceHistory never fails; an empty slice means no history is available.
func (f *Facade) PriceHistory(ctx context.Context, origin, destination string) []models.PriceHistoryPoint {
	return f.history.Synthesize(ctx, normalizeCode(origin), normalizeCode(destination))
}

func (f *Facade) Airports(ctx context.Context, keyword string) []models.AirportSuggestion {
	return f.locations.Resolve(ctx, keyword)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
