package main

import (
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/farewatch/internal/filter"
	"github.com/dharmasatrya/farewatch/internal/models"
)

var searchFlags struct {
	origin      string
	destination string
	date        string
	returnDate  string
	passengers  int
	sortBy      string
	sortOrder   string
	maxStops    int
	maxPrice    float64
	airlines    []string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search flight offers for a route and date",
	Example: `  farewatch search --from JFK --to LAX --date 2026-11-20
  farewatch search --from CGK --to DPS --date 2026-11-20 --return 2026-11-27 --passengers 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := models.SearchQuery{
			Origin:        searchFlags.origin,
			Destination:   searchFlags.destination,
			DepartureDate: searchFlags.date,
			Passengers:    searchFlags.passengers,
			TripType:      models.OneWay,
		}
		if searchFlags.returnDate != "" {
			ret := searchFlags.returnDate
			q.ReturnDate = &ret
			q.TripType = models.RoundTrip
		}

		offers, err := application.Facade.SearchFlights(cmd.Context(), q)
		if err != nil {
			return err
		}

		opts := filter.Options{
			Airlines:  searchFlags.airlines,
			SortBy:    searchFlags.sortBy,
			SortOrder: searchFlags.sortOrder,
		}
		if cmd.Flags().Changed("max-stops") {
			opts.MaxStops = &searchFlags.maxStops
		}
		if cmd.Flags().Changed("max-price") {
			opts.PriceMax = &searchFlags.maxPrice
		}

		renderOffers(cmd.OutOrStdout(), filter.Apply(offers, opts))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.origin, "from", "", "Origin IATA code")
	searchCmd.Flags().StringVar(&searchFlags.destination, "to", "", "Destination IATA code")
	searchCmd.Flags().StringVar(&searchFlags.date, "date", "", "Departure date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchFlags.returnDate, "return", "", "Return date (YYYY-MM-DD); makes the search round-trip")
	searchCmd.Flags().IntVar(&searchFlags.passengers, "passengers", 1, "Number of adult passengers")
	searchCmd.Flags().StringVar(&searchFlags.sortBy, "sort", filter.SortPrice,
		"Sort by price, duration, departure, arrival, stops or best_value")
	searchCmd.Flags().StringVar(&searchFlags.sortOrder, "order", "asc", "Sort order (asc, desc)")
	searchCmd.Flags().IntVar(&searchFlags.maxStops, "max-stops", 0, "Hide offers with more stops")
	searchCmd.Flags().Float64Var(&searchFlags.maxPrice, "max-price", 0, "Hide offers above this total price")
	searchCmd.Flags().StringSliceVar(&searchFlags.airlines, "airline", nil, "Only show these carrier codes")
	_ = searchCmd.MarkFlagRequired("from")
	_ = searchCmd.MarkFlagRequired("to")
	_ = searchCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(searchCmd)
}
