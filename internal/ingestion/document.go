// Package ingestion turns uploaded résumé documents into plain text.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// ExtractText returns the cleaned text of a document. The MIME type is
// normalized first; types without an extractor yield ErrUnsupportedFormat.
func ExtractText(data []byte, mimeType string) (string, error) {
	normalized := NormalizeMIMEType(mimeType)

	var (
		raw string
		err error
	)
	switch normalized {
	case MIMEPDF:
		raw, err = extractPDF(data)
	case MIMEDOCX:
		raw, err = extractDOCX(data)
	case MIMETXT:
		raw, err = extractTXT(data)
	case MIMEHTML:
		raw, err = extractHTML(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			return "", err
		}
		return "", &ParseError{MIMEType: normalized, Cause: err}
	}

	text := CleanExtractedText(raw)
	if text == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

// Document is a file read from disk together with its extracted text.
type Document struct {
	Info FileInfo
	Text string
}

// ReadFile reads and extracts a document from path. The MIME type is taken
// from the file extension.
func ReadFile(path string, maxSize int64) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := ValidateFileSize(data, maxSize); err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	mimeType := MIMETypeForName(name)
	if mimeType == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}

	text, err := ExtractText(data, mimeType)
	if err != nil {
		return nil, err
	}
	return &Document{Info: FileInfoFor(name, data, mimeType), Text: text}, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	return docxText(rc)
}

// docxText collects character data from a WordprocessingML body, breaking
// lines at paragraphs, breaks and tabs.
func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString(" ")
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text is not valid UTF-8")
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", ErrEmptyContent
	}
	return string(data), nil
}

func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, head").Remove()
	doc.Find("br, p, div, li, tr, h1, h2, h3, h4, h5, h6, section, article").AfterHtml("\n")

	var lines []string
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, s.Text())
	})
	if len(lines) == 0 {
		lines = append(lines, doc.Text())
	}
	return strings.Join(lines, "\n"), nil
}
