package main

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <origin> <destination>",
	Short: "Show the simulated 31-day price history for a route",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points := application.Facade.PriceHistory(cmd.Context(), args[0], args[1])
		renderHistory(cmd.OutOrStdout(), points)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
