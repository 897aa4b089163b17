package locations

import (
	"strings"

	"github.com/dharmasatrya/farewatch/internal/models"
)

// Catalog is served whenever the provider cannot be reached.
var Catalog = []models.AirportSuggestion{
	// North America
	{Code: "JFK", City: "New York", Name: "John F. Kennedy International Airport"},
	{Code: "LGA", City: "New York", Name: "LaGuardia Airport"},
	{Code: "LAX", City: "Los Angeles", Name: "Los Angeles International Airport"},
	{Code: "SFO", City: "San Francisco", Name: "San Francisco International Airport"},
	{Code: "ORD", City: "Chicago", Name: "O'Hare International Airport"},
	{Code: "ATL", City: "Atlanta", Name: "Hartsfield-Jackson Atlanta International Airport"},
	{Code: "MIA", City: "Miami", Name: "Miami International Airport"},
	{Code: "YYZ", City: "Toronto", Name: "Toronto Pearson International Airport"},

	// Europe
	{Code: "LHR", City: "London", Name: "Heathrow Airport"},
	{Code: "LGW", City: "London", Name: "Gatwick Airport"},
	{Code: "CDG", City: "Paris", Name: "Charles de Gaulle Airport"},
	{Code: "FRA", City: "Frankfurt", Name: "Frankfurt Airport"},
	{Code: "AMS", City: "Amsterdam", Name: "Amsterdam Airport Schiphol"},
	{Code: "MAD", City: "Madrid", Name: "Adolfo Suárez Madrid-Barajas Airport"},
	{Code: "BCN", City: "Barcelona", Name: "Josep Tarradellas Barcelona-El Prat Airport"},
	{Code: "FCO", City: "Rome", Name: "Leonardo da Vinci-Fiumicino Airport"},
	{Code: "IST", City: "Istanbul", Name: "Istanbul Airport"},

	// Middle East / Asia / Oceania
	{Code: "DXB", City: "Dubai", Name: "Dubai International Airport"},
	{Code: "SIN", City: "Singapore", Name: "Singapore Changi Airport"},
	{Code: "HKG", City: "Hong Kong", Name: "Hong Kong International Airport"},
	{Code: "HND", City: "Tokyo", Name: "Haneda Airport"},
	{Code: "NRT", City: "Tokyo", Name: "Narita International Airport"},
	{Code: "CGK", City: "Jakarta", Name: "Soekarno-Hatta International Airport"},
	{Code: "DPS", City: "Denpasar", Name: "Ngurah Rai International Airport"},
	{Code: "SYD", City: "Sydney", Name: "Sydney Kingsford Smith Airport"},
}

// SearchCatalog returns up to limit catalog entries whose code, city or name
// contains keyword, ignoring case.
func SearchCatalog(keyword string, limit int) []models.AirportSuggestion {
	needle := strings.ToLower(strings.TrimSpace(keyword))

	result := make([]models.AirportSuggestion, 0, limit)
	for _, a := range Catalog {
		if len(result) == limit {
			break
		}
		if Matches(a, needle) {
			result = append(result, a)
		}
	}
	return result
}

// Matches reports whether keyword occurs in the suggestion's code, city or
// name, ignoring case.
func Matches(a models.AirportSuggestion, keyword string) bool {
	needle := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(a.Code), needle) ||
		strings.Contains(strings.ToLower(a.City), needle) ||
		strings.Contains(strings.ToLower(a.Name), needle)
}
