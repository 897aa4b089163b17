package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/search"
	"github.com/dharmasatrya/farewatch/pkg/currency"
)

// FlightService is the part of the search facade the HTTP surface renders.
type FlightService interface {
	SearchFlights(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, error)
	PriceHistory(ctx context.Context, origin, destination string) []models.PriceHistoryPoint
	Airports(ctx context.Context, keyword string) []models.AirportSuggestion
}

var _ FlightService = (*search.Facade)(nil)

type SearchHandler struct {
	service FlightService
}

func NewSearchHandler(service FlightService) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchQuery
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	offers, err := h.service.SearchFlights(ctx, req)
	if err != nil {
		return writeError(c, err)
	}

	flights := make([]models.PricedOffer, 0, len(offers))
	for _, o := range offers {
		flights = append(flights, models.PricedOffer{
			FlightOffer:    o,
			FormattedPrice: currency.Format(o.Price, o.Currency),
		})
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: req,
		Metadata: models.SearchMetadata{
			TotalResults: len(flights),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Flights: flights,
	})
}

func (h *SearchHandler) PriceHistory(c echo.Context) error {
	origin := strings.TrimSpace(c.QueryParam("origin"))
	destination := strings.TrimSpace(c.QueryParam("destination"))
	if origin == "" {
		return writeError(c, models.ErrMissingOrigin)
	}
	if destination == "" {
		return writeError(c, models.ErrMissingDestination)
	}

	points := h.service.PriceHistory(c.Request().Context(), origin, destination)

	return c.JSON(http.StatusOK, models.PriceHistoryResponse{
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
		Points:      points,
	})
}

func (h *SearchHandler) Airports(c echo.Context) error {
	keyword := c.QueryParam("keyword")

	return c.JSON(http.StatusOK, models.AirportsResponse{
		Keyword:  keyword,
		Airports: h.service.Airports(c.Request().Context(), keyword),
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
