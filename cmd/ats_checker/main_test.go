package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/config"
	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/server"
	"github.com/jonathan/ats-checker/internal/types"
)

const (
	resumeText = `Jane Doe
jane@example.com | (555) 123-4567

SUMMARY
Backend engineer with 6 years building Go services.

EXPERIENCE
Senior Engineer, Acme Corp 2019-2024
- Developed microservices in Go and PostgreSQL, reducing latency by 40%
- Led migration to Kubernetes for 25 services

EDUCATION
B.S. Computer Science, State University

SKILLS
Go, PostgreSQL, Kubernetes, Docker, AWS`

	jobText = "Senior Backend Engineer. Requirements: Go, PostgreSQL, Kubernetes, Docker, AWS, microservices experience."
)

// run executes the CLI in a clean directory with providers disabled.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ATS_PROVIDER_NAME", "none")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	resume := writeFile(t, dir, "jane.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)
	outPath := filepath.Join(dir, "report.json")

	output, err := run(t, "analyze", "--resume", resume, "--job", job, "--json", "--out", outPath)
	require.NoError(t, err)

	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	assert.Equal(t, "jane.txt", report.Metadata.FileName)
	assert.Greater(t, report.OverallScore, 0)
	assert.Equal(t, types.SourceFallback, report.Provenance.Suggestions)

	saved, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var savedReport types.Report
	require.NoError(t, json.Unmarshal(saved, &savedReport))
	assert.Equal(t, report.Metadata.ReportID, savedReport.Metadata.ReportID)
}

func TestAnalyzeCommand_Box(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	resume := writeFile(t, dir, "jane.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)

	output, err := run(t, "analyze", "-r", resume, "-j", job, "--file-name", "Jane Doe CV")
	require.NoError(t, err)
	assert.Contains(t, output, "ATS SCORE")
	assert.Contains(t, output, "Jane Doe CV")
	assert.Contains(t, output, "KEYWORDS")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	resume := writeFile(t, dir, "jane.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)
	short := writeFile(t, dir, "short.txt", "Go dev")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing resume", []string{"analyze", "--job", job}, "resume"},
		{"missing job", []string{"analyze", "--resume", resume}, "job"},
		{"job and url", []string{"analyze", "--resume", resume, "--job", job, "--job-url", "https://x"}, "job"},
		{"unknown resume", []string{"analyze", "--resume", filepath.Join(dir, "nope.txt"), "--job", job}, "file not found"},
		{"unsupported resume", []string{"analyze", "--resume", writeFile(t, dir, "cv.png", "x"), "--job", job}, "unsupported file type"},
		{"short resume", []string{"analyze", "--resume", short, "--job", job}, "resumeText"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatsCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	output, err := run(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, output, ".docx")
	assert.Contains(t, output, "10MB")

	output, err = run(t, "formats", "--json")
	require.NoError(t, err)
	var body struct {
		SupportedFormats []map[string]string `json:"supportedFormats"`
		MaxFileSize      string              `json:"maxFileSize"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &body))
	assert.Len(t, body.SupportedFormats, 4)
	assert.Equal(t, "10MB", body.MaxFileSize)
}

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "token", "--subject", "ci")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot issue token")

	secret := "0123456789abcdef-secret"
	t.Setenv("ATS_SERVER_AUTH_SECRET", secret)
	output, err := run(t, "token", "--subject", "ci")
	require.NoError(t, err)

	svc := server.NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24})
	claims, err := svc.ValidateToken(strings.TrimSpace(output))
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := writeFile(t, dir, "custom.yaml", "server:\n  max_upload_bytes: 5242880\n")

	output, err := run(t, "--config", cfgPath, "formats")
	require.NoError(t, err)
	assert.Contains(t, output, "5MB")

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "formats")
	assert.Error(t, err)
}

func TestServerConfig(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{
		Port:           9000,
		MaxUploadBytes: 1024,
		RateLimit:      config.RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
	}}

	out, err := serverConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 9000, out.Port)
	assert.Equal(t, 10, out.RateLimit.DefaultLimit)
	assert.Nil(t, out.JWT)

	cfg.Server.Auth = config.AuthConfig{Enabled: true, Secret: "short"}
	_, err = serverConfig(cfg)
	assert.Error(t, err)

	cfg.Server.Auth = config.AuthConfig{Enabled: true, Secret: "0123456789abcdef", ExpirationHours: 2}
	out, err = serverConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, out.JWT)
	assert.Equal(t, 2, out.JWT.ExpirationHours)
}

func TestLLMConfig(t *testing.T) {
	logger := zap.NewNop()

	got := llmConfig(config.ProviderConfig{Name: "openai"}, "", logger)
	assert.Equal(t, llm.ProviderNone, got.Provider, "missing key disables the provider")

	got = llmConfig(config.ProviderConfig{
		Name:           "gemini",
		ChatModel:      "gemini-1.5-pro",
		EmbeddingModel: "embedding-001",
	}, "key", logger)
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "gemini-1.5-pro", got.GetModel(llm.TierLite))
	assert.Equal(t, "gemini-1.5-pro", got.GetModel(llm.TierStandard))
	assert.Equal(t, "embedding-001", got.EmbeddingModel)

	got = llmConfig(config.ProviderConfig{Name: "openai", BaseURL: "http://localhost:11434/v1"}, "key", logger)
	assert.Equal(t, "http://localhost:11434/v1", got.BaseURL)
	assert.Equal(t, "gpt-4o-mini", got.GetModel(llm.TierStandard))
}
