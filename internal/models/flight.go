package models

type Endpoint struct {
	Airport string `json:"airport"`
	City    string `json:"city,omitempty"`
	Time    string `json:"time"`
	Date    string `json:"date"`
}

// FlightOffer is the canonical offer handed to callers. It is built from the
// first itinerary of one provider offer and is never mutated afterwards.
type FlightOffer struct {
	ID           string   `json:"id"`
	Airline      string   `json:"airline"`
	FlightNumber string   `json:"flight_number"`
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Duration     string   `json:"duration"`
	Stops        int      `json:"stops"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Aircraft     *string  `json:"aircraft,omitempty"`
}

type PriceHistoryPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type AirportSuggestion struct {
	Code string `json:"code"`
	City string `json:"city"`
	Name string `json:"name"`
}
