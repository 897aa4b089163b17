package models

type SearchMetadata struct {
	TotalResults int   `json:"total_results"`
	SearchTimeMs int64 `json:"search_time_ms"`
}

type PricedOffer struct {
	FlightOffer
	FormattedPrice string `json:"formatted_price"`
}

type SearchResponse struct {
	SearchCriteria SearchQuery    `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Flights        []PricedOffer  `json:"flights"`
}

type PriceHistoryResponse struct {
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Points      []PriceHistoryPoint `json:"points"`
}

type AirportsResponse struct {
	Keyword  string              `json:"keyword"`
	Airports []AirportSuggestion `json:"airports"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
