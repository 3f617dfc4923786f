package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-checker/internal/analysis"
	"github.com/jonathan/ats-checker/internal/ingestion"
)

// uploadField is the multipart field holding the résumé file.
const uploadField = "resume"

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	JobURL         string `json:"jobUrl,omitempty"`
	FileName       string `json:"fileName,omitempty"`
}

// UploadData describes an extracted upload.
type UploadData struct {
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	Text       string `json:"text"`
	TextLength int    `json:"textLength"`
	WordCount  int    `json:"wordCount"`
}

// UploadResponse is the body of a successful POST /api/upload.
type UploadResponse struct {
	Success   bool       `json:"success"`
	Data      UploadData `json:"data"`
	Timestamp string     `json:"timestamp"`
}

// FormatsResponse is the body of GET /api/upload/supported-formats.
type FormatsResponse struct {
	SupportedFormats []ingestion.Format `json:"supportedFormats"`
	MaxFileSize      string             `json:"maxFileSize"`
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": s.timestamp(),
	})
}

// handleAnalyze scores a résumé against a job description. When the
// description is blank and jobUrl is set, the posting is fetched first.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, r, &RequestError{Title: "Invalid request body", Message: err.Error()})
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" && req.JobURL != "" {
		if s.fetcher == nil {
			s.errorResponse(w, r, &RequestError{Title: "Job URL not supported", Message: "fetching job postings is disabled"})
			return
		}
		posting, err := s.fetcher.Fetch(r.Context(), req.JobURL)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		s.logger.Debug("fetched job description",
			zap.String("url", posting.URL),
			zap.String("platform", string(posting.Platform)),
			zap.Bool("rendered", posting.Rendered),
		)
		req.JobDescription = posting.Text
	}

	report, err := s.analyzer.Analyze(r.Context(), analysis.Request{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		FileName:       req.FileName,
	})
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleUpload extracts text from a multipart résumé upload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Allow for multipart framing on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, r, ingestion.TooLarge(s.maxUpload))
			return
		}
		s.errorResponse(w, r, &RequestError{
			Title:   "No file uploaded",
			Message: "Please upload a valid PDF, DOCX, TXT or HTML resume file.",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := ingestion.ValidateFileSize(data, s.maxUpload); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	mimeType := ingestion.NormalizeMIMEType(header.Header.Get("Content-Type"))
	if !ingestion.IsSupported(mimeType) {
		if byName := ingestion.MIMETypeForName(header.Filename); byName != "" {
			mimeType = byName
		}
	}

	text, err := ingestion.ExtractText(data, mimeType)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.logger.Info("parsed upload",
		zap.String("file", header.Filename),
		zap.String("type", mimeType),
		zap.Int("text_length", len(text)),
	)
	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Success: true,
		Data: UploadData{
			FileName:   header.Filename,
			FileType:   mimeType,
			Text:       text,
			TextLength: len([]rune(text)),
			WordCount:  len(strings.Fields(text)),
		},
		Timestamp: s.timestamp(),
	})
}

// handleSupportedFormats lists accepted upload types.
func (s *Server) handleSupportedFormats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, FormatsResponse{
		SupportedFormats: ingestion.SupportedFormats(),
		MaxFileSize:      ingestion.FormatSize(s.maxUpload),
	})
}
