package providers

import (
	"context"

	"github.com/dharmasatrya/farewatch/internal/models"
)

// OfferSearcher is the part of the provider client that returns raw offers.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, q models.SearchQuery, max int) ([]Offer, error)
}

type LocationSearcher interface {
	SearchLocations(ctx context.Context, keyword string, limit int) ([]Location, error)
}

// TokenSource hands out bearer tokens for the data endpoints.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

var (
	_ OfferSearcher    = (*Client)(nil)
	_ LocationSearcher = (*Client)(nil)
)
