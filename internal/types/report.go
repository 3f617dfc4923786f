package types

// Report is the complete result of one analysis call. It is built once and never mutated.
type Report struct {
	OverallScore      int               `json:"overallScore"`
	Breakdown         Breakdown         `json:"breakdown"`
	KeywordAnalysis   KeywordAnalysis   `json:"keywordAnalysis"`
	StructureAnalysis StructureAnalysis `json:"structureAnalysis"`
	AISuggestions     Suggestions       `json:"aiSuggestions"`
	Feedback          Feedback          `json:"feedback"`
	Metadata          Metadata          `json:"metadata"`
	ContentInsights   ContentInsights   `json:"contentInsights"`
	Provenance        Provenance        `json:"provenance"`
}

// Breakdown holds the five weighted sub-scores, each rounded to the nearest integer.
type Breakdown struct {
	ATSCompatibility    int `json:"atsCompatibility"`
	KeywordMatch        int `json:"keywordMatch"`
	ContentQuality      int `json:"contentQuality"`
	SectionCompleteness int `json:"sectionCompleteness"`
	OverallReadability  int `json:"overallReadability"`
}

// KeywordAnalysis summarizes keyword coverage.
type KeywordAnalysis struct {
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
	MatchPercentage int      `json:"matchPercentage"`
	ResumeKeywords  []string `json:"resumeKeywords"`
	JobKeywords     []string `json:"jobKeywords"`
}

// StructureAnalysis is the part of StructureResult exposed in reports.
type StructureAnalysis struct {
	Sections        SectionMap `json:"sections"`
	Issues          []string   `json:"issues"`
	Recommendations []string   `json:"recommendations"`
}

// Suggestions is the part of SuggestionBundle exposed in reports.
type Suggestions struct {
	General      []string `json:"general"`
	Specific     []string `json:"specific"`
	ActionVerbs  []string `json:"actionVerbs"`
	PowerPhrases []string `json:"powerPhrases"`
}

// Feedback is the natural-language summary derived from the scores.
type Feedback struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// Metadata describes the analyzed input.
type Metadata struct {
	ReportID     string `json:"reportId"`
	FileName     string `json:"fileName"`
	AnalysisDate string `json:"analysisDate"`
	TextLength   int    `json:"textLength"`
	WordCount    int    `json:"wordCount"`
}

// Provenance records which provider-backed stages fell back.
type Provenance struct {
	Keywords    Source `json:"keywords"`
	Similarity  Source `json:"similarity"`
	Suggestions Source `json:"suggestions"`
}

// ContentInsights holds auxiliary content signals. They are reported but not weighted.
type ContentInsights struct {
	ActionVerbs    ActionVerbCheck     `json:"actionVerbs"`
	Achievements   AchievementCheck    `json:"quantifiableAchievements"`
	Readability    float64             `json:"readability"`
	SectionContent map[string][]string `json:"sectionContent"`
	DetectedVerbs  []string            `json:"detectedVerbs"`
}

// ActionVerbCheck counts strong action verbs.
type ActionVerbCheck struct {
	Found []string `json:"found"`
	Count int      `json:"count"`
	Score float64  `json:"score"`
}

// AchievementCheck counts quantified accomplishments.
type AchievementCheck struct {
	Count    int      `json:"count"`
	Score    float64  `json:"score"`
	Examples []string `json:"examples"`
}
