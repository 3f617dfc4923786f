package structure

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/ats-checker/internal/types"
)

// maxAchievementExamples bounds the examples returned by CheckQuantifiableAchievements.
const maxAchievementExamples = 5

var sectionContentPatterns = map[string]*regexp.Regexp{
	types.SectionContact:    regexp.MustCompile(`(?i)(?:contact|email|phone|address)[:\s]*([^\n]+)`),
	types.SectionSummary:    regexp.MustCompile(`(?i)(?:summary|objective|profile|about)[:\s]*([^\n]+)`),
	types.SectionExperience: regexp.MustCompile(`(?i)(?:experience|work history|employment)[:\s]*([^\n]+)`),
	types.SectionEducation:  regexp.MustCompile(`(?i)(?:education|academic|degree)[:\s]*([^\n]+)`),
	types.SectionSkills:     regexp.MustCompile(`(?i)(?:skills|competencies|technologies)[:\s]*([^\n]+)`),
}

// ExtractSectionContent returns, per section, the rest of each line that follows a marker.
// Sections without a match are omitted.
func ExtractSectionContent(text string) map[string][]string {
	content := make(map[string][]string)
	for _, name := range types.SectionNames {
		for _, m := range sectionContentPatterns[name].FindAllStringSubmatch(text, -1) {
			if line := strings.TrimSpace(m[1]); line != "" {
				content[name] = append(content[name], line)
			}
		}
	}
	return content
}

var experienceVerbs = []string{
	"managed", "developed", "created", "implemented", "designed",
	"led", "coordinated", "analyzed", "improved", "optimized",
	"increased", "decreased", "reduced", "enhanced", "streamlined",
	"facilitated", "delivered", "achieved", "exceeded", "maintained",
}

// CheckActionVerbs counts which strong verbs appear anywhere in text.
// Ten distinct verbs score 100.
func CheckActionVerbs(text string) types.ActionVerbCheck {
	lower := strings.ToLower(text)
	found := []string{}
	for _, verb := range experienceVerbs {
		if strings.Contains(lower, verb) {
			found = append(found, verb)
		}
	}
	return types.ActionVerbCheck{
		Found: found,
		Count: len(found),
		Score: math.Min(100, float64(len(found))/10*100),
	}
}

var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+[,\d]*`),
	regexp.MustCompile(`(?i)\d+\s*(?:people|employees|team members)`),
	regexp.MustCompile(`(?i)\d+\s*(?:years|months)`),
	regexp.MustCompile(`(?i)increased\s+by\s+\d+`),
	regexp.MustCompile(`(?i)decreased\s+by\s+\d+`),
	regexp.MustCompile(`(?i)reduced\s+by\s+\d+`),
}

// CheckQuantifiableAchievements counts numeric accomplishments such as
// percentages, amounts, team sizes and durations. Five matches score 100.
func CheckQuantifiableAchievements(text string) types.AchievementCheck {
	var matches []string
	for _, p := range achievementPatterns {
		matches = append(matches, p.FindAllString(text, -1)...)
	}

	examples := matches
	if len(examples) > maxAchievementExamples {
		examples = examples[:maxAchievementExamples]
	}
	if examples == nil {
		examples = []string{}
	}

	return types.AchievementCheck{
		Count:    len(matches),
		Score:    math.Min(100, float64(len(matches))/5*100),
		Examples: examples,
	}
}
