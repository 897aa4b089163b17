package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/internal/ratelimit"
)

const (
	flightOffersPath = "/v2/shopping/flight-offers"
	locationsPath    = "/v1/reference-data/locations"
)

// invalidator is implemented by token sources that can drop a token the
// provider no longer accepts.
type invalidator interface {
	Invalidate(ctx context.Context)
}

// Client issues authenticated GET requests to the provider's data endpoints.
// It never retries; callers decide on resilience.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
	logger     *zap.Logger
}

type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *ratelimit.EndpointLimiter
	Logger     *zap.Logger
}

func NewClient(cfg ClientConfig, tokens TokenSource) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		httpClient: cfg.HTTPClient,
		limiter:    cfg.Limiter,
		logger:     cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func (c *Client) SearchOffers(ctx context.Context, q models.SearchQuery, max int) ([]Offer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Passengers))
	if q.IsRoundTrip() {
		params.Set("returnDate", *q.ReturnDate)
	}
	if max > 0 {
		params.Set("max", strconv.Itoa(max))
	}

	var resp offersResponse
	if err := c.get(ctx, ratelimit.EndpointOffers, flightOffersPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) SearchLocations(ctx context.Context, keyword string, limit int) ([]Location, error) {
	params := url.Values{}
	params.Set("subType", "CITY,AIRPORT")
	params.Set("keyword", keyword)
	if limit > 0 {
		params.Set("page[limit]", strconv.Itoa(limit))
	}

	var resp locationsResponse
	if err := c.get(ctx, ratelimit.EndpointLocations, locationsPath, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, result any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx, endpoint); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("provider request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.tokens.(invalidator); ok {
				inv.Invalidate(ctx)
			}
		}
		return &models.ProviderError{
			Endpoint:   endpoint,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}
