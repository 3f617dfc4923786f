package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-checker/internal/server"
)

func newTokenCmd(c *cli) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token",
		Long:  "Issue a bearer token for the analysis endpoints. Requires server.auth.secret.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jwtCfg, err := c.cfg.Server.Auth.JWT()
			if err != nil {
				return fmt.Errorf("cannot issue token: %w", err)
			}
			token, err := server.NewJWTService(jwtCfg).GenerateToken(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Client name embedded in the token (required)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
