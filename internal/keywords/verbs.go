package keywords

import "strings"

// actionVerbs are strong past-tense verbs looked for in résumé text.
var actionVerbs = []string{
	"managed", "developed", "created", "implemented", "designed",
	"led", "coordinated", "analyzed", "improved", "optimized",
	"increased", "decreased", "reduced", "enhanced", "streamlined",
	"facilitated", "delivered", "achieved", "exceeded", "maintained",
	"supervised", "trained", "mentored", "collaborated", "negotiated",
	"resolved", "generated", "produced", "established", "launched",
}

// ExtractActionVerbs returns the known action verbs that occur inside any
// whitespace-separated word of text, in list order.
func ExtractActionVerbs(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	found := []string{}
	for _, verb := range actionVerbs {
		for _, word := range words {
			if strings.Contains(word, verb) {
				found = append(found, verb)
				break
			}
		}
	}
	return found
}
