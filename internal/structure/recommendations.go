package structure

import "github.com/jonathan/ats-checker/internal/types"

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 8

var missingSectionTips = map[string]string{
	types.SectionContact:    "Add a clear contact information section with email and phone number",
	types.SectionSummary:    "Include a professional summary or objective statement",
	types.SectionExperience: "Add a detailed work experience section with quantifiable achievements",
	types.SectionEducation:  "Include your educational background and relevant certifications",
	types.SectionSkills:     "Add a skills section highlighting relevant technical and soft skills",
}

var atsTips = []string{
	"Use simple, clean formatting without images, tables, or excessive styling",
	"Avoid headers, footers, and page numbers",
	"Use standard fonts and avoid special formatting characters",
}

var generalTips = []string{
	"Use bullet points for better readability",
	`Include quantifiable achievements (e.g., "Increased sales by 25%")`,
	"Use action verbs to start bullet points",
	"Keep the resume to 1-2 pages maximum",
}

// Recommendations lists missing-section tips, then ATS tips when any issue
// exists, then general tips, truncated to MaxRecommendations.
func Recommendations(sections types.SectionMap, issues []string) []string {
	recs := make([]string, 0, len(types.SectionNames)+len(atsTips)+len(generalTips))
	for _, name := range sections.Missing() {
		recs = append(recs, missingSectionTips[name])
	}
	if len(issues) > 0 {
		recs = append(recs, atsTips...)
	}
	recs = append(recs, generalTips...)

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
