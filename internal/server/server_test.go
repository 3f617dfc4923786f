package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-checker/internal/analysis"
	"github.com/jonathan/ats-checker/internal/config"
	"github.com/jonathan/ats-checker/internal/fetch"
	"github.com/jonathan/ats-checker/internal/ingestion"
	"github.com/jonathan/ats-checker/internal/metrics"
	"github.com/jonathan/ats-checker/internal/server/ratelimit"
	"github.com/jonathan/ats-checker/internal/types"
)

const (
	testResume = `Jane Doe
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

	testJob = "Senior Backend Engineer. Requirements: Go, PostgreSQL, Kubernetes, Docker, AWS, microservices experience."
)

type stubFetcher struct {
	text string
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*fetch.Posting, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return &fetch.Posting{URL: url, Text: f.text, Platform: fetch.PlatformUnknown}, nil
}

type testServer struct {
	*Server
	fetcher *stubFetcher
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	fetcher := &stubFetcher{text: testJob}
	m := metrics.New()
	analyzer := analysis.New(analysis.Deps{
		Observer: m,
		Clock:    func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) },
	}, analysis.DefaultOptions())

	s, err := New(cfg, Deps{Analyzer: analyzer, Fetcher: fetcher, Metrics: m})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, fetcher: fetcher, metrics: m}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestNew_RequiresAnalyzer(t *testing.T) {
	_, err := New(Config{}, Deps{})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "2024-03-05T12:00:00Z", body["timestamp"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(jsonRequest(t, "/api/analyze", AnalyzeRequest{
		ResumeText:     testResume,
		JobDescription: testJob,
		FileName:       "jane.pdf",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[types.Report](t, rec)
	assert.Equal(t, "jane.pdf", report.Metadata.FileName)
	assert.Equal(t, "2024-03-05T12:00:00.000Z", report.Metadata.AnalysisDate)
	assert.NotEmpty(t, report.KeywordAnalysis.Matched)
	assert.Equal(t, types.SourceFallback, report.Provenance.Suggestions)
	assert.Empty(t, s.fetcher.urls)
}

func TestHandleAnalyze_FetchesJobURL(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(jsonRequest(t, "/api/analyze", AnalyzeRequest{
		ResumeText: testResume,
		JobURL:     "https://boards.greenhouse.io/acme/jobs/1",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"https://boards.greenhouse.io/acme/jobs/1"}, s.fetcher.urls)
	report := decode[types.Report](t, rec)
	assert.Contains(t, report.KeywordAnalysis.JobKeywords, "kubernetes")
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        *http.Request
		fetchErr   error
		wantStatus int
		wantError  string
	}{
		{
			name:       "malformed json",
			req:        httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{")),
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name: "short resume",
			req: jsonRequest(t, "/api/analyze", AnalyzeRequest{
				ResumeText:     "too short",
				JobDescription: testJob,
			}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
		},
		{
			name:       "missing job description",
			req:        jsonRequest(t, "/api/analyze", AnalyzeRequest{ResumeText: testResume}),
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
		},
		{
			name:       "job fetch failure",
			req:        jsonRequest(t, "/api/analyze", AnalyzeRequest{ResumeText: testResume, JobURL: "https://example.com/job"}),
			fetchErr:   &fetch.Error{URL: "https://example.com/job", Message: "HTTP 404"},
			wantStatus: http.StatusBadGateway,
			wantError:  "Job posting fetch failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{})
			s.fetcher.err = tt.fetchErr
			rec := s.do(tt.req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandleUpload(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(uploadRequest(t, "resume", "jane.txt", "text/plain; charset=utf-8", []byte("Jane Doe  \n Go developer .")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[UploadResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "jane.txt", body.Data.FileName)
	assert.Equal(t, ingestion.MIMETXT, body.Data.FileType)
	assert.Equal(t, "Jane Doe Go developer.", body.Data.Text)
	assert.Equal(t, 22, body.Data.TextLength)
	assert.Equal(t, 4, body.Data.WordCount)
	assert.Equal(t, "2024-03-05T12:00:00Z", body.Timestamp)
}

func TestHandleUpload_MIMEFromExtension(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(uploadRequest(t, "resume", "jane.txt", "application/octet-stream", []byte("plain text résumé")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ingestion.MIMETXT, decode[UploadResponse](t, rec).Data.FileType)
}

func TestHandleUpload_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       func(t *testing.T) *http.Request
		maxUpload int64
		wantError string
	}{
		{
			name:      "no file",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "other", "a.txt", "text/plain", []byte("x")) },
			wantError: "No file uploaded",
		},
		{
			name:      "unsupported type",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "photo.png", "image/png", []byte("png")) },
			wantError: "Invalid file type",
		},
		{
			name:      "empty text",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "blank.txt", "text/plain", []byte("   \n ")) },
			wantError: "Document parsing failed",
		},
		{
			name:      "corrupt pdf",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "cv.pdf", "application/pdf", []byte("not a pdf")) },
			wantError: "Document parsing failed",
		},
		{
			name:      "too large",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "resume", "big.txt", "text/plain", bytes.Repeat([]byte("a"), 2048)) },
			maxUpload: 1024,
			wantError: "File too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{MaxUploadBytes: tt.maxUpload})
			rec := s.do(tt.req(t))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandleSupportedFormats(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/upload/supported-formats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[FormatsResponse](t, rec)
	assert.Equal(t, "10MB", body.MaxFileSize)
	assert.Equal(t, ingestion.SupportedFormats(), body.SupportedFormats)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := s.do(httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    2,
		DefaultWindow:   time.Hour,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	}})

	for i := 0; i < 2; i++ {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}
	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1800", rec.Header().Get("Retry-After"), "one token per half hour")
	assert.Equal(t, "rate_limit_exceeded", decode[ErrorResponse](t, rec).Error)

	for i := 0; i < 10; i++ {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code, "health is never limited")
	}
}

func TestAuth(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: testSecret, ExpirationHours: 1}
	s := newTestServer(t, Config{JWT: jwtCfg})
	token, err := NewJWTService(jwtCfg).GenerateToken("ci")
	require.NoError(t, err)

	body := AnalyzeRequest{ResumeText: testResume, JobDescription: testJob}

	rec := s.do(jsonRequest(t, "/api/analyze", body))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := jsonRequest(t, "/api/analyze", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = s.do(req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/upload/supported-formats", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "format listing is public")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})
	s.do(jsonRequest(t, "/api/analyze", AnalyzeRequest{ResumeText: testResume, JobDescription: testJob}))

	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, `ats_analyses_total{result="success"} 1`)
	assert.Contains(t, text, `ats_provider_fallbacks_total{component="suggestions"} 1`)
	assert.Contains(t, text, `http_requests_total{method="POST",path="POST /api/analyze",status_code="200"} 1`)
}
