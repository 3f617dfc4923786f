package structure

import (
	"testing"

	"github.com/jonathan/ats-checker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanResume = "Contact: jane@example.com\n" +
	"Summary: Backend engineer.\n" +
	"Experience: Built services in Go.\n" +
	"Education: BS Computer Science\n" +
	"Skills: Go, SQL, Kubernetes"

func TestValidate_CleanCompleteResume(t *testing.T) {
	result := Validate(cleanResume)

	assert.Equal(t, types.SectionMap{Contact: true, Summary: true, Experience: true, Education: true, Skills: true}, result.Sections)
	assert.Equal(t, 100.0, result.SectionScore)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, generalTips, result.Recommendations)
}

func TestValidate_MissingSummary(t *testing.T) {
	text := "Experience: Developed and managed software projects. Skills: Python, SQL. " +
		"Education: BS Computer Science. Contact: jane@example.com."

	result := Validate(text)

	assert.False(t, result.Sections.Summary)
	assert.Equal(t, 80.0, result.SectionScore)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 90, result.Score)
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, "Include a professional summary or objective statement", result.Recommendations[0])
}

func TestValidate_EmptyText(t *testing.T) {
	result := Validate("")

	assert.Equal(t, 0, result.Sections.Found())
	assert.Equal(t, 0.0, result.SectionScore)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Recommendations, MaxRecommendations)
}

func TestDetectSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.SectionMap
	}{
		{name: "case insensitive", text: "EMAIL me", want: types.SectionMap{Contact: true}},
		{name: "multi-word marker", text: "Work History", want: types.SectionMap{Experience: true}},
		{name: "university marks education", text: "State University", want: types.SectionMap{Education: true}},
		{name: "marker inside a sentence still counts", text: "I care about tools", want: types.SectionMap{Summary: true, Skills: true}},
		{name: "nothing", text: "hello world", want: types.SectionMap{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSections(tt.text))
		})
	}
}

func TestCheckATSCompatibility(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "clean", text: cleanResume, want: []string{}},
		{name: "graphics", text: "see image below", want: []string{IssueGraphics}},
		{name: "photography is a known false positive", text: "Hobbies: photography", want: []string{IssueGraphics}},
		{name: "tables", text: "results grid", want: []string{IssueTables}},
		{
			name: "formatting reported once",
			text: "Led the **billing** migration and the _ledger_ rewrite with `go` services for many customers",
			want: []string{IssueFormatting},
		},
		{
			name: "dense markup also trips the special character ratio",
			text: "**bold** and _under_ and `code`",
			want: []string{IssueFormatting, IssueSpecialChars},
		},
		{name: "header", text: "header line", want: []string{IssueHeaderFooter}},
		{name: "page number", text: "Page 2 of 3", want: []string{IssuePageNumbers}},
		{name: "line breaks", text: "one\n\n\ntwo", want: []string{IssueLineBreaks}},
		{name: "special characters", text: "★★★★ résumé", want: []string{IssueSpecialChars}},
		{name: "font", text: "Arial font", want: []string{IssueFontSpecifiers}},
		{name: "script is a known false positive", text: "wrote script", want: []string{IssueFontSpecifiers}},
		{name: "checks are case sensitive", text: "IMAGE TABLE HEADER FONT", want: []string{}},
		{
			name: "battery order",
			text: "footer with photo in a table",
			want: []string{IssueGraphics, IssueTables, IssueHeaderFooter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckATSCompatibility(tt.text))
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		sectionScore float64
		issues       int
		want         int
	}{
		{sectionScore: 100, issues: 0, want: 100},
		{sectionScore: 80, issues: 0, want: 90},
		{sectionScore: 60, issues: 0, want: 60},
		{sectionScore: 100, issues: 2, want: 80},
		{sectionScore: 80, issues: 1, want: 70},
		{sectionScore: 20, issues: 3, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.sectionScore, tt.issues), "section=%v issues=%d", tt.sectionScore, tt.issues)
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("missing sections and issues fill the cap", func(t *testing.T) {
		recs := Recommendations(types.SectionMap{}, []string{IssueTables})

		require.Len(t, recs, MaxRecommendations)
		assert.Equal(t, missingSectionTips[types.SectionContact], recs[0])
		assert.Equal(t, missingSectionTips[types.SectionSkills], recs[4])
		assert.Equal(t, atsTips, recs[5:])
	})

	t.Run("no issues skips ATS tips", func(t *testing.T) {
		recs := Recommendations(types.SectionMap{Contact: true, Summary: true, Experience: true}, nil)

		assert.Equal(t, []string{
			missingSectionTips[types.SectionEducation],
			missingSectionTips[types.SectionSkills],
			generalTips[0], generalTips[1], generalTips[2], generalTips[3],
		}, recs)
	})
}
