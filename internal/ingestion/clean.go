package ingestion

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	disallowedChars  = regexp.MustCompile(`[^\w\s.,;:!?\-()\[\]{}]`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,;:!?])`)
	spaceAfterPunct  = regexp.MustCompile(`([.,;:!?])\s*`)
)

// CleanExtractedText flattens document text into a single line for analysis.
// Characters outside word characters and basic punctuation become spaces,
// whitespace runs collapse, and punctuation is followed by exactly one space.
func CleanExtractedText(text string) string {
	text = disallowedChars.ReplaceAllString(text, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = spaceAfterPunct.ReplaceAllString(text, "$1 ")
	return strings.TrimSpace(text)
}
