package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/config"
	"github.com/jonathan/ats-checker/internal/logging"
)

const app = "ats_checker"

// cli holds state shared by every subcommand once the root pre-run has loaded
// the configuration.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.NewViper()}

	root := &cobra.Command{
		Use:           app,
		Short:         "Score résumés against job descriptions",
		Long:          "ats_checker scores a résumé against a job description for ATS compatibility, keyword coverage and content quality, and explains how to improve it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is ./ats-checker.yaml)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.Bool("log-json", false, "json format for logging")
	_ = c.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = c.v.BindPFlag("log.json", flags.Lookup("log-json"))

	root.AddCommand(
		newAnalyzeCmd(c),
		newServeCmd(c),
		newFormatsCmd(c),
		newTokenCmd(c),
	)
	return root
}

func (c *cli) load() error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}
