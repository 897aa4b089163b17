package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/dharmasatrya/farewatch/internal/models"
	"github.com/dharmasatrya/farewatch/pkg/currency"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	s := table.StyleRounded
	s.Format.Header = text.FormatDefault
	t.SetStyle(s)
	return t
}

func renderOffers(w io.Writer, offers []models.FlightOffer) {
	if len(offers) == 0 {
		fmt.Fprintln(w, "No flights found.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Flight", "Departure", "Arrival", "Duration", "Stops", "Aircraft", "Price"})
	for _, o := range offers {
		aircraft := "-"
		if o.Aircraft != nil {
			aircraft = *o.Aircraft
		}
		t.AppendRow(table.Row{
			o.ID,
			o.FlightNumber,
			fmt.Sprintf("%s %s %s", o.Departure.Airport, o.Departure.Date, o.Departure.Time),
			fmt.Sprintf("%s %s %s", o.Arrival.Airport, o.Arrival.Date, o.Arrival.Time),
			o.Duration,
			o.Stops,
			aircraft,
			currency.Format(o.Price, o.Currency),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Stops", Align: text.AlignRight},
		{Name: "Price", Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Total", len(offers)})
	t.Render()
}

func renderHistory(w io.Writer, points []models.PriceHistoryPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "No price history available.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Date", "Price"})
	low, high := points[0], points[0]
	for _, p := range points {
		t.AppendRow(table.Row{p.Date, fmt.Sprintf("%.0f", p.Price)})
		if p.Price < low.Price {
			low = p
		}
		if p.Price > high.Price {
			high = p
		}
	}
	t.AppendFooter(table.Row{"Low / High", fmt.Sprintf("%.0f (%s) / %.0f (%s)", low.Price, low.Date, high.Price, high.Date)})
	t.Render()
}

func renderAirports(w io.Writer, airports []models.AirportSuggestion) {
	if len(airports) == 0 {
		fmt.Fprintln(w, "No airports matched.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Code", "City", "Name"})
	for _, a := range airports {
		t.AppendRow(table.Row{a.Code, a.City, a.Name})
	}
	t.Render()
}
