package keywords

import (
	"math"
	"strings"

	"github.com/jonathan/ats-checker/internal/types"
)

// Match compares résumé keywords against job keywords. A job keyword is
// matched when its lowercase form, or its stem, appears among the résumé
// keywords. Matched and Missing keep job order. An empty job list scores 0.
func Match(resumeKeywords, jobKeywords []string) types.MatchResult {
	words := make(map[string]struct{}, len(resumeKeywords))
	stems := make(map[string]struct{}, len(resumeKeywords))
	for _, k := range resumeKeywords {
		lower := strings.ToLower(k)
		words[lower] = struct{}{}
		stems[Stem(lower)] = struct{}{}
	}

	result := types.MatchResult{
		Matched: []string{},
		Missing: []string{},
	}
	for _, k := range jobKeywords {
		lower := strings.ToLower(k)
		_, exact := words[lower]
		_, stemmed := stems[Stem(lower)]
		if exact || stemmed {
			result.Matched = append(result.Matched, k)
		} else {
			result.Missing = append(result.Missing, k)
		}
	}

	if len(jobKeywords) == 0 {
		return result
	}

	result.Score = math.Min(100, 100*float64(len(result.Matched))/float64(len(jobKeywords)))
	result.MatchPercentage = int(math.Round(result.Score))
	return result
}

// stemSuffixes are tried longest first; one is removed per pass.
var stemSuffixes = []string{"ments", "ment", "ings", "ing", "ers", "er", "ed", "es", "s"}

// minStemLength is the shortest stem a suffix may leave behind.
const minStemLength = 3

// Stem reduces a lowercase word to a light stem so that inflections such as
// developer/developed or manager/managed compare equal. It is a heuristic,
// not a linguistic stemmer.
func Stem(word string) string {
	w := strings.ToLower(word)
	for pass := 0; pass < 2; pass++ {
		w = stripSuffix(w)
	}
	if len(w) > minStemLength {
		w = strings.TrimSuffix(w, "e")
	}
	return w
}

func stripSuffix(w string) string {
	for _, suffix := range stemSuffixes {
		if !strings.HasSuffix(w, suffix) || len(w)-len(suffix) < minStemLength {
			continue
		}
		if suffix == "s" && strings.HasSuffix(w, "ss") {
			return w
		}
		return w[:len(w)-len(suffix)]
	}
	return w
}
