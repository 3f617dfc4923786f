package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/config"
	"github.com/jonathan/ats-checker/internal/metrics"
	"github.com/jonathan/ats-checker/internal/server"
	"github.com/jonathan/ats-checker/internal/server/ratelimit"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing analysis, upload and supported-format endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, c)
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	_ = c.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func serverConfig(cfg *config.Config) (server.Config, error) {
	out := server.Config{
		Port:           cfg.Server.Port,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		RateLimit:      ratelimit.FromSettings(cfg.Server.RateLimit),
	}
	if cfg.Server.Auth.Enabled {
		jwtCfg, err := cfg.Server.Auth.JWT()
		if err != nil {
			return server.Config{}, err
		}
		out.JWT = jwtCfg
	}
	return out, nil
}

func runServe(cmd *cobra.Command, c *cli) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	p, err := buildPipeline(ctx, c.cfg, m, c.logger)
	if err != nil {
		return fmt.Errorf("failed to set up analysis: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			c.logger.Warn("failed to release resources", zap.Error(err))
		}
	}()

	srvCfg, err := serverConfig(c.cfg)
	if err != nil {
		return err
	}
	srv, err := server.New(srvCfg, server.Deps{
		Analyzer: p.analyzer,
		Fetcher:  p.fetcher,
		Metrics:  m,
		Logger:   c.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}
