package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/analysis"
	"github.com/jonathan/ats-checker/internal/ingestion"
	"github.com/jonathan/ats-checker/internal/observability"
)

type analyzeFlags struct {
	resume   string
	job      string
	jobURL   string
	fileName string
	out      string
	json     bool
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a résumé against a job description",
		Long:  "Extract the résumé text (PDF, DOCX, TXT or HTML), read or fetch the job description, and print the ATS report.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, c, f)
		},
	}

	cmd.Flags().StringVarP(&f.resume, "resume", "r", "", "Path to the résumé file (required)")
	cmd.Flags().StringVarP(&f.job, "job", "j", "", "Path to a job description file")
	cmd.Flags().StringVarP(&f.jobURL, "job-url", "u", "", "URL of a job posting to fetch")
	cmd.Flags().StringVar(&f.fileName, "file-name", "", "File name reported in metadata (default is the résumé file name)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write the JSON report to this file")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the report as JSON")

	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
	cmd.MarkFlagsOneRequired("job", "job-url")
	return cmd
}

func runAnalyze(cmd *cobra.Command, c *cli, f *analyzeFlags) error {
	ctx := cmd.Context()

	doc, err := ingestion.ReadFile(f.resume, c.cfg.Server.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}

	p, err := buildPipeline(ctx, c.cfg, nil, c.logger)
	if err != nil {
		return fmt.Errorf("failed to set up analysis: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			c.logger.Warn("failed to release resources", zap.Error(err))
		}
	}()

	var jobText string
	if f.jobURL != "" {
		posting, err := p.fetcher.Fetch(ctx, f.jobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		jobText = posting.Text
	} else {
		jobDoc, err := ingestion.ReadFile(f.job, c.cfg.Server.MaxUploadBytes)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobText = jobDoc.Text
	}

	fileName := f.fileName
	if fileName == "" {
		fileName = filepath.Base(f.resume)
	}

	report, err := p.analyzer.Analyze(ctx, analysis.Request{
		ResumeText:     doc.Text,
		JobDescription: jobText,
		FileName:       fileName,
	})
	if err != nil {
		return err
	}

	if f.out != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := os.WriteFile(f.out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		c.logger.Info("report written", zap.String("path", f.out))
	}

	if f.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	return nil
}
