package structure

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Issue descriptions, one per ATS-hostility category.
const (
	IssueGraphics       = "Contains images or graphics that may not be parsed by ATS"
	IssueTables         = "Contains tables that may not be parsed correctly by ATS"
	IssueFormatting     = "Contains formatting that may not be preserved by ATS"
	IssueHeaderFooter   = "Contains headers or footers that may interfere with ATS parsing"
	IssuePageNumbers    = "Contains page numbers that may interfere with ATS parsing"
	IssueLineBreaks     = "Contains excessive line breaks that may affect ATS parsing"
	IssueSpecialChars   = "Contains excessive special characters that may affect ATS parsing"
	IssueFontSpecifiers = "Contains font specifications that may not be preserved by ATS"
)

// specialCharRatio is the share of non-standard characters above which text is flagged.
const specialCharRatio = 0.1

var (
	formattingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\*\*.*?\*\*`),
		regexp.MustCompile(`\*.*?\*`),
		regexp.MustCompile(`_.*?_`),
		regexp.MustCompile("`.*?`"),
	}
	pageNumberPattern  = regexp.MustCompile(`(?i)\bpage\s+\d+\b`)
	lineBreakPattern   = regexp.MustCompile(`\n\s*\n\s*\n`)
	specialCharPattern = regexp.MustCompile(`[^\w\s.,;:!?\-()\[\]{}@#$%&+=/]`)
)

// atsCheck is one entry of the ordered ATS battery.
type atsCheck struct {
	issue   string
	matches func(text string) bool
}

// atsChecks run in order against the raw, case-sensitive text. Substring
// collisions such as "photography" or "script" are accepted false positives.
var atsChecks = []atsCheck{
	{issue: IssueGraphics, matches: containsAny("image", "graphic", "photo")},
	{issue: IssueTables, matches: containsAny("table", "grid")},
	{issue: IssueFormatting, matches: matchesAny(formattingPatterns...)},
	{issue: IssueHeaderFooter, matches: containsAny("header", "footer")},
	{issue: IssuePageNumbers, matches: matchesAny(pageNumberPattern)},
	{issue: IssueLineBreaks, matches: matchesAny(lineBreakPattern)},
	{issue: IssueSpecialChars, matches: hasExcessiveSpecialChars},
	{issue: IssueFontSpecifiers, matches: containsAny("font", "size", "pt")},
}

// CheckATSCompatibility returns one issue per triggered category, in battery order.
func CheckATSCompatibility(text string) []string {
	issues := []string{}
	for _, check := range atsChecks {
		if check.matches(text) {
			issues = append(issues, check.issue)
		}
	}
	return issues
}

func containsAny(substrings ...string) func(string) bool {
	return func(text string) bool {
		for _, s := range substrings {
			if strings.Contains(text, s) {
				return true
			}
		}
		return false
	}
}

func matchesAny(patterns ...*regexp.Regexp) func(string) bool {
	return func(text string) bool {
		for _, p := range patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func hasExcessiveSpecialChars(text string) bool {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return false
	}
	count := len(specialCharPattern.FindAllStringIndex(text, -1))
	return float64(count) > float64(length)*specialCharRatio
}
