package providers

// Wire types for the provider's JSON payloads. Only the fields the
// normalizers read are declared.

type offersResponse struct {
	Data []Offer `json:"data"`
}

type Offer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       OfferPrice  `json:"price"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   SegmentEndpoint `json:"departure"`
	Arrival     SegmentEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Aircraft    *Aircraft       `json:"aircraft,omitempty"`
}

type SegmentEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type OfferPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type locationsResponse struct {
	Data []Location `json:"data"`
}

type Location struct {
	SubType  string          `json:"subType"`
	IATACode string          `json:"iataCode"`
	Name     string          `json:"name"`
	Address  LocationAddress `json:"address"`
}

type LocationAddress struct {
	CityName    string `json:"cityName"`
	CountryCode string `json:"countryCode,omitempty"`
}
