// Package observability renders analysis reports for terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-checker/internal/ingestion"
	"github.com/jonathan/ats-checker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer writes boxed report sections.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Widths are
// counted in runes so bullets and accents stay aligned.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// bar renders a 0-100 score as a 20-cell gauge.
func bar(score int) string {
	filled := max(0, min(score, 100)) / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s\n", heading)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintReport outputs every section of a report.
func (p *Printer) PrintReport(r *types.Report) {
	if r == nil {
		return
	}
	p.PrintScores(r)
	p.PrintKeywords(r.KeywordAnalysis)
	p.PrintStructure(r.StructureAnalysis)
	p.PrintFeedback(r.Feedback)
	p.PrintSuggestions(r.AISuggestions)
}

// PrintScores outputs the overall score, the breakdown and provenance.
func (p *Printer) PrintScores(r *types.Report) {
	if r == nil {
		return
	}
	b := r.Breakdown
	var sb strings.Builder
	fmt.Fprintf(&sb, "File:     %s\n", r.Metadata.FileName)
	fmt.Fprintf(&sb, "Analyzed: %s\n", r.Metadata.AnalysisDate)
	fmt.Fprintf(&sb, "Words:    %d\n\n", r.Metadata.WordCount)
	fmt.Fprintf(&sb, "Overall score         %3d  %s\n\n", r.OverallScore, bar(r.OverallScore))
	rows := []struct {
		label string
		score int
	}{
		{"ATS compatibility", b.ATSCompatibility},
		{"Keyword match", b.KeywordMatch},
		{"Content quality", b.ContentQuality},
		{"Section completeness", b.SectionCompleteness},
		{"Readability", b.OverallReadability},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-21s %3d  %s\n", row.label, row.score, bar(row.score))
	}

	pv := r.Provenance
	if pv.Keywords == types.SourceFallback || pv.Similarity == types.SourceFallback || pv.Suggestions == types.SourceFallback {
		fmt.Fprintf(&sb, "\nSources: keywords=%s similarity=%s suggestions=%s", pv.Keywords, pv.Similarity, pv.Suggestions)
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs matched and missing job keywords.
func (p *Printer) PrintKeywords(k types.KeywordAnalysis) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match: %d%% of %d job keywords\n\n", k.MatchPercentage, len(k.JobKeywords))
	writeList(&sb, "Matched:", k.Matched, maxItemsToShow)
	writeList(&sb, "Missing:", k.Missing, maxItemsToShow)
	p.printBox("KEYWORDS", strings.TrimRight(sb.String(), "\n"))
}

// PrintStructure outputs detected sections and ATS issues.
func (p *Printer) PrintStructure(s types.StructureAnalysis) {
	var sb strings.Builder
	for _, name := range types.SectionNames {
		mark := "✗"
		if s.Sections.Has(name) {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, name)
	}
	sb.WriteString("\n")
	writeList(&sb, "Issues:", s.Issues, maxItemsToShow)
	writeList(&sb, "Recommendations:", s.Recommendations, maxItemsToShow)
	p.printBox("STRUCTURE", strings.TrimRight(sb.String(), "\n"))
}

// PrintFeedback outputs the summary, strengths, weaknesses and recommendations.
func (p *Printer) PrintFeedback(f types.Feedback) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", f.Summary)
	writeList(&sb, "Strengths:", f.Strengths, maxItemsToShow)
	writeList(&sb, "Weaknesses:", f.Weaknesses, maxItemsToShow)
	writeList(&sb, "Recommendations:", f.Recommendations, maxItemsToShow)
	p.printBox("FEEDBACK", strings.TrimRight(sb.String(), "\n"))
}

// PrintSuggestions outputs improvement suggestions. Empty bundles print nothing.
func (p *Printer) PrintSuggestions(s types.Suggestions) {
	if len(s.General)+len(s.Specific)+len(s.ActionVerbs)+len(s.PowerPhrases) == 0 {
		return
	}
	var sb strings.Builder
	writeList(&sb, "General:", s.General, maxItemsToShow)
	writeList(&sb, "Specific:", s.Specific, maxItemsToShow)
	if len(s.ActionVerbs) > 0 {
		fmt.Fprintf(&sb, "Action verbs: %s\n\n", strings.Join(s.ActionVerbs, ", "))
	}
	writeList(&sb, "Power phrases:", s.PowerPhrases, maxItemsToShow)
	p.printBox("SUGGESTIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintFormats outputs the accepted upload formats.
func (p *Printer) PrintFormats(formats []ingestion.Format, maxSize int64) {
	var sb strings.Builder
	for _, f := range formats {
		fmt.Fprintf(&sb, "%-6s %s\n", f.Extension, f.Description)
		fmt.Fprintf(&sb, "       %s\n", f.MIMEType)
	}
	fmt.Fprintf(&sb, "\nMaximum file size: %s", ingestion.FormatSize(maxSize))
	p.printBox("SUPPORTED FORMATS", sb.String())
}
