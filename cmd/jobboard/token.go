package main

import (
	"errors"
	"fmt"
	"time"

	"jobboard/internal/auth"
	"jobboard/internal/config"

	"github.com/spf13/cobra"
)

// newTokenCmd mints a bearer token for local testing. Real deployments sit
// behind an identity provider that signs tokens with the same secret.
func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tok, err := auth.NewJWT(cfg.JWTSecret).Sign(userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id to put in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 7*24*time.Hour, "Token lifetime")
	return cmd
}
