// Package types provides type definitions for the sub-results and reports produced by the ATS checker.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section names in canonical order.
const (
	SectionContact    = "contact"
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// SectionNames lists every canonical résumé section in detection order.
var SectionNames = []string{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
}

// SectionMap records which canonical sections were detected. The key set is fixed.
type SectionMap struct {
	Contact    bool `json:"contact"`
	Summary    bool `json:"summary"`
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
}

// Has reports whether the named section was detected. Unknown names return false.
func (m SectionMap) Has(name string) bool {
	switch name {
	case SectionContact:
		return m.Contact
	case SectionSummary:
		return m.Summary
	case SectionExperience:
		return m.Experience
	case SectionEducation:
		return m.Education
	case SectionSkills:
		return m.Skills
	}
	return false
}

// Set marks the named section as present or absent.
func (m *SectionMap) Set(name string, present bool) {
	switch name {
	case SectionContact:
		m.Contact = present
	case SectionSummary:
		m.Summary = present
	case SectionExperience:
		m.Experience = present
	case SectionEducation:
		m.Education = present
	case SectionSkills:
		m.Skills = present
	}
}

// Found returns the number of detected sections.
func (m SectionMap) Found() int {
	n := 0
	for _, name := range SectionNames {
		if m.Has(name) {
			n++
		}
	}
	return n
}

// Missing returns the absent section names in canonical order.
func (m SectionMap) Missing() []string {
	var missing []string
	for _, name := range SectionNames {
		if !m.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// MatchResult is the outcome of comparing résumé keywords against job keywords.
// Matched and Missing partition the job keywords and keep their order.
type MatchResult struct {
	Score           float64  `json:"score"`
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	MatchPercentage int      `json:"matchPercentage"`
}

// StructureResult is the outcome of the structural and ATS-compatibility analysis.
type StructureResult struct {
	Sections        SectionMap `json:"sections"`
	Issues          []string   `json:"issues"`
	Recommendations []string   `json:"recommendations"`
	Score           int        `json:"score"`
	SectionScore    float64    `json:"sectionScore"`
}

// SuggestionBundle holds qualitative improvement suggestions and a content-quality score.
type SuggestionBundle struct {
	General             []string `json:"general"`
	Specific            []string `json:"specific"`
	ActionVerbs         []string `json:"actionVerbs"`
	PowerPhrases        []string `json:"powerPhrases"`
	ContentQualityScore float64  `json:"contentQualityScore"`
}

// Source records whether a provider-backed value came from the provider or its fallback.
type Source string

const (
	// SourceProvider marks a value produced by an external provider.
	SourceProvider Source = "provider"
	// SourceFallback marks a value produced by the deterministic fallback.
	SourceFallback Source = "fallback"
)
