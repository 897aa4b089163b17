package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var airportsCmd = &cobra.Command{
	Use:     "airports <keyword>",
	Aliases: []string{"airport"},
	Short:   "Suggest airports matching a code, city or name",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suggestions := application.Facade.Airports(cmd.Context(), strings.Join(args, " "))
		renderAirports(cmd.OutOrStdout(), suggestions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(airportsCmd)
}
