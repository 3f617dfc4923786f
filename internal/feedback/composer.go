// Package feedback turns aggregated scores into a summary, strengths,
// weaknesses and a recommendation list.
package feedback

import (
	"fmt"

	"github.com/jonathan/ats-checker/internal/types"
)

// Summary thresholds on the overall score.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

// Trigger thresholds for strengths and weaknesses.
const (
	StrongMatchPercentage  = 70
	StrongStructureScore   = 80
	StrongContentQuality   = 80
	WeakContentQuality     = 70
	MissingKeywordsAllowed = 5
)

// Per-source caps for the recommendation list.
const (
	maxGeneralRecommendations   = 3
	maxSpecificRecommendations  = 3
	maxStructureRecommendations = 2
)

const (
	summaryExcellent = "Excellent resume! Your resume is well-optimized for ATS systems and shows strong alignment with the job requirements."
	summaryGood      = "Good resume with room for improvement. Focus on the suggestions below to increase your chances."
	summaryPoor      = "Your resume needs significant improvements to pass ATS screening. Follow the recommendations below."

	strengthKeywords  = "Strong keyword alignment with job requirements"
	strengthStructure = "Good ATS-friendly formatting and structure"
	strengthContent   = "High-quality content with good impact statements"

	weaknessStructure = "Several formatting and structure issues detected"
	weaknessContent   = "Content could be more impactful and specific"
)

// Input carries the results feedback is derived from. Any sub-result may be
// absent when the stage that produces it did not run.
type Input struct {
	OverallScore float64
	Match        types.Optional[types.MatchResult]
	Structure    types.Optional[types.StructureResult]
	Suggestions  types.Optional[types.SuggestionBundle]
}

// Compose builds the feedback for in. Strengths and weaknesses are evaluated
// independently, so several of each may fire.
func Compose(in Input) types.Feedback {
	fb := types.Feedback{
		Summary:         Summary(in.OverallScore),
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	match, hasMatch := in.Match.Get()
	structure, hasStructure := in.Structure.Get()
	suggestions, hasSuggestions := in.Suggestions.Get()

	if hasMatch && match.MatchPercentage >= StrongMatchPercentage {
		fb.Strengths = append(fb.Strengths, strengthKeywords)
	}
	if hasStructure && structure.Score >= StrongStructureScore {
		fb.Strengths = append(fb.Strengths, strengthStructure)
	}
	if hasSuggestions && suggestions.ContentQualityScore >= StrongContentQuality {
		fb.Strengths = append(fb.Strengths, strengthContent)
	}

	if hasMatch && len(match.Missing) > MissingKeywordsAllowed {
		fb.Weaknesses = append(fb.Weaknesses,
			fmt.Sprintf("Missing %d important keywords from the job description", len(match.Missing)))
	}
	if hasStructure && len(structure.Issues) > 0 {
		fb.Weaknesses = append(fb.Weaknesses, weaknessStructure)
	}
	if hasSuggestions && suggestions.ContentQualityScore < WeakContentQuality {
		fb.Weaknesses = append(fb.Weaknesses, weaknessContent)
	}

	if hasSuggestions {
		fb.Recommendations = append(fb.Recommendations, head(suggestions.General, maxGeneralRecommendations)...)
		fb.Recommendations = append(fb.Recommendations, head(suggestions.Specific, maxSpecificRecommendations)...)
	}
	if hasStructure {
		fb.Recommendations = append(fb.Recommendations, head(structure.Recommendations, maxStructureRecommendations)...)
	}

	return fb
}

// Summary selects the summary sentence for an overall score.
func Summary(score float64) string {
	switch {
	case score >= ExcellentThreshold:
		return summaryExcellent
	case score >= GoodThreshold:
		return summaryGood
	default:
		return summaryPoor
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
