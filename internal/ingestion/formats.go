package ingestion

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Supported MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
	MIMEHTML = "text/html"
)

// DefaultMaxFileSize is the upload limit.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Format describes one accepted document type.
type Format struct {
	Extension   string `json:"extension"`
	MIMEType    string `json:"mimeType"`
	Description string `json:"description"`
}

var supportedFormats = []Format{
	{Extension: ".pdf", MIMEType: MIMEPDF, Description: "Portable Document Format"},
	{Extension: ".docx", MIMEType: MIMEDOCX, Description: "Microsoft Word Document"},
	{Extension: ".txt", MIMEType: MIMETXT, Description: "Plain Text File"},
	{Extension: ".html", MIMEType: MIMEHTML, Description: "HTML Document"},
}

var mimeAliases = map[string]string{
	"application/x-pdf":   MIMEPDF,
	"application/acrobat": MIMEPDF,
	"text/htm":            MIMEHTML,
}

// SupportedFormats lists the accepted document types.
func SupportedFormats() []Format {
	return append([]Format(nil), supportedFormats...)
}

// IsSupported reports whether mimeType, after normalization, has an extractor.
func IsSupported(mimeType string) bool {
	normalized := NormalizeMIMEType(mimeType)
	for _, f := range supportedFormats {
		if f.MIMEType == normalized {
			return true
		}
	}
	return false
}

// NormalizeMIMEType lowercases mimeType, drops parameters and resolves aliases.
func NormalizeMIMEType(mimeType string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if alias, ok := mimeAliases[clean]; ok {
		return alias
	}
	return clean
}

// MIMETypeForName guesses the MIME type from a file extension. Unknown
// extensions return "".
func MIMETypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".htm" {
		return MIMEHTML
	}
	for _, f := range supportedFormats {
		if f.Extension == ext {
			return f.MIMEType
		}
	}
	return ""
}

// ValidateFileSize rejects data larger than max bytes. A non-positive max uses DefaultMaxFileSize.
func ValidateFileSize(data []byte, max int64) error {
	if max <= 0 {
		max = DefaultMaxFileSize
	}
	if int64(len(data)) > max {
		return TooLarge(max)
	}
	return nil
}

// TooLarge returns the ErrFileTooLarge error for a limit of max bytes.
func TooLarge(max int64) error {
	return fmt.Errorf("%w of %s", ErrFileTooLarge, FormatSize(max))
}

// FormatSize renders a byte count in megabytes, e.g. "10MB".
func FormatSize(bytes int64) string {
	return formatMB(bytes) + "MB"
}

// FileInfo describes an uploaded file.
type FileInfo struct {
	Name      string `json:"name"`
	Size      int    `json:"size"`
	SizeInMB  string `json:"sizeInMB"`
	Type      string `json:"type"`
	Extension string `json:"extension"`
}

// FileInfoFor summarizes an uploaded file.
func FileInfoFor(name string, data []byte, mimeType string) FileInfo {
	return FileInfo{
		Name:      name,
		Size:      len(data),
		SizeInMB:  fmt.Sprintf("%.2f", float64(len(data))/(1024*1024)),
		Type:      mimeType,
		Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."),
	}
}

func formatMB(bytes int64) string {
	mb := float64(bytes) / (1024 * 1024)
	if mb == math.Trunc(mb) {
		return fmt.Sprintf("%d", int64(mb))
	}
	return fmt.Sprintf("%.2f", mb)
}
