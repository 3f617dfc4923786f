package keywords

// stopwords is the English stopword set removed before frequency counting.
var stopwords = toSet([]string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "aren", "as", "at", "be", "because", "been", "before", "being",
	"below", "between", "both", "but", "by", "can", "cannot", "could", "couldn",
	"did", "didn", "do", "does", "doesn", "doing", "don", "down", "during", "each",
	"few", "for", "from", "further", "had", "hadn", "has", "hasn", "have", "haven",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "i", "if", "in", "into", "is", "isn", "it", "its", "itself", "just",
	"let", "ll", "me", "more", "most", "mustn", "my", "myself", "no", "nor", "not",
	"now", "of", "off", "on", "once", "only", "or", "other", "ought", "our", "ours",
	"ourselves", "out", "over", "own", "re", "same", "shan", "she", "should",
	"shouldn", "so", "some", "such", "than", "that", "the", "their", "theirs",
	"them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "us", "ve", "very", "was",
	"wasn", "we", "were", "weren", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "won", "would", "wouldn", "you", "your",
	"yours", "yourself", "yourselves", "also", "may", "might", "must", "shall",
	"within", "without", "via", "etc", "per", "upon", "whether", "yet", "able",
	"across", "along", "already", "among", "another", "around", "else", "ever",
	"every", "however", "including", "like", "many", "much", "never", "often",
	"one", "onto", "rather", "since", "still", "thus", "toward", "towards",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lowercase token is an English stopword.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
