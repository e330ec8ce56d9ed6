package analysis

import "sort"

// stopWords is the fixed exclusion set applied during tokenization.
// It is built once and never mutated; callers only read it through IsStopWord.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {},
	"that": {}, "from": {}, "are": {}, "was": {}, "were": {},
	"have": {}, "has": {}, "job": {}, "role": {}, "experience": {},
	"years": {}, "skills": {}, "work": {},
}

// IsStopWord reports whether word is excluded from tokenization
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// StopWords returns a sorted copy of the stopword set
func StopWords() []string {
	words := make([]string, 0, len(stopWords))
	for w := range stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
