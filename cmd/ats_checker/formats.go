package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-checker/internal/ingestion"
	"github.com/jonathan/ats-checker/internal/observability"
)

func newFormatsCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported résumé formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := ingestion.SupportedFormats()
			maxSize := c.cfg.Server.MaxUploadBytes
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"supportedFormats": formats,
					"maxFileSize":      ingestion.FormatSize(maxSize),
				})
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintFormats(formats, maxSize)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
