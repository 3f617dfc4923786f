package scoring

import (
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonLetters    = regexp.MustCompile(`[^a-z]`)
	vowelGroups   = regexp.MustCompile(`[aeiouy]+`)
)

// Readability returns the Flesch Reading Ease of text clamped to [0,100].
// Text with no words or no sentences scores 0.
func Readability(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}

	wordCount := float64(len(words))
	score := 206.835 - 1.015*(wordCount/float64(sentences)) - 84.6*(float64(syllables)/wordCount)
	return clamp(score)
}

// Syllables estimates the syllable count of a single word.
func Syllables(word string) int {
	w := nonLetters.ReplaceAllString(strings.ToLower(word), "")
	if len(w) <= 3 {
		return 1
	}
	n := len(vowelGroups.FindAllString(w, -1))
	if n == 0 {
		return 1
	}
	return n
}
