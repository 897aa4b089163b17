package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/farewatch/internal/credential"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect or refresh the provider access token",
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted access token and its expiry",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Store:   %s\n", storeLocation(application.Store))

		cred, err := application.Store.Load(cmd.Context())
		if errors.Is(err, credential.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No token stored.")
			return nil
		}
		if err != nil {
			return err
		}

		state := "valid"
		if !cred.Valid(time.Now()) {
			state = "expired"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token:   %s\nExpires: %s (%s)\n",
			mask(cred.Token), cred.ExpiresAt.Local().Format(time.RFC1123), state)
		return nil
	},
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop the current token and exchange client credentials for a new one",
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Tokens.Invalidate(cmd.Context())
		token, err := application.Tokens.Token(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Obtained token %s\n", mask(token))
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the persisted token",
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Tokens.Invalidate(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Token cleared.")
		return nil
	},
}

func storeLocation(store credential.Store) string {
	switch s := store.(type) {
	case *credential.FileStore:
		return "file " + s.Path()
	case *credential.RedisStore:
		return "redis"
	default:
		return "memory"
	}
}

// mask keeps only enough of a token to tell two apart.
func mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	tokenCmd.AddCommand(tokenStatusCmd, tokenRefreshCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
