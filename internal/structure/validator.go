// Package structure detects canonical résumé sections and ATS-hostile
// formatting. Detection is heuristic substring and regex matching, not a
// document-structure parse: a marker word inside a sentence counts as a section.
package structure

import (
	"math"
	"strings"

	"github.com/jonathan/ats-checker/internal/types"
)

const (
	// issuePenalty is deducted from the section score per detected issue.
	issuePenalty = 10.0
	// cleanBonus is added when the résumé is complete enough and has no issues.
	cleanBonus = 10.0
	// cleanBonusThreshold is the minimum section score for the clean bonus.
	cleanBonusThreshold = 80.0
)

// sectionMarkers maps each canonical section to the substrings that reveal it.
var sectionMarkers = map[string][]string{
	types.SectionContact:    {"contact", "email", "phone", "address"},
	types.SectionSummary:    {"summary", "objective", "profile", "about"},
	types.SectionExperience: {"experience", "work history", "employment", "career"},
	types.SectionEducation:  {"education", "academic", "degree", "university", "college"},
	types.SectionSkills:     {"skills", "competencies", "technologies", "tools"},
}

// Validate analyzes résumé text for section completeness and ATS compatibility.
func Validate(text string) types.StructureResult {
	sections := DetectSections(text)
	issues := CheckATSCompatibility(text)
	sectionScore := 100 * float64(sections.Found()) / float64(len(types.SectionNames))

	return types.StructureResult{
		Sections:        sections,
		Issues:          issues,
		Recommendations: Recommendations(sections, issues),
		Score:           Score(sectionScore, len(issues)),
		SectionScore:    sectionScore,
	}
}

// DetectSections reports which canonical sections have a marker in text.
func DetectSections(text string) types.SectionMap {
	lower := strings.ToLower(text)

	var sections types.SectionMap
	for _, name := range types.SectionNames {
		for _, marker := range sectionMarkers[name] {
			if strings.Contains(lower, marker) {
				sections.Set(name, true)
				break
			}
		}
	}
	return sections
}

// Score combines the section score with the issue count: 10 points off per
// issue (floor 0), plus 10 (cap 100) when the section score is at least 80
// and there are no issues.
func Score(sectionScore float64, issueCount int) int {
	score := math.Max(0, sectionScore-issuePenalty*float64(issueCount))
	if sectionScore >= cleanBonusThreshold && issueCount == 0 {
		score = math.Min(100, score+cleanBonus)
	}
	return int(math.Round(score))
}
