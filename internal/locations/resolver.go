// Package locations turns a free-text keyword into airport suggestions, from
// the provider when it answers and from a static catalog when it does not.
package locations

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/providers"
)

const MaxSuggestions = 5

type Resolver struct {
	provider providers.LocationSearcher
	logger   *zap.Logger
}

func NewResolver(provider providers.LocationSearcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{provider: provider, logger: logger}
}

// Resolve never mixes sources: either every suggestion comes from the
// provider or every suggestion comes from the catalog.
func (r *Resolver) Resolve(ctx context.Context, keyword string) []models.AirportSuggestion {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.AirportSuggestion{}
	}

	locs, err := r.provider.SearchLocations(ctx, keyword, MaxSuggestions)
	if err != nil {
		r.logger.Warn("location search failed, using fallback catalog",
			zap.String("keyword", keyword),
			zap.Error(err))
		return SearchCatalog(keyword, MaxSuggestions)
	}

	result := make([]models.AirportSuggestion, 0, MaxSuggestions)
	for _, loc := range locs {
		if len(result) == MaxSuggestions {
			break
		}
		result = append(result, normalizeLocation(loc))
	}
	return result
}

func normalizeLocation(loc providers.Location) models.AirportSuggestion {
	city := loc.Address.CityName
	if city == "" {
		city = loc.IATACode
	}
	return models.AirportSuggestion{
		Code: loc.IATACode,
		City: city,
		Name: loc.Name,
	}
}
