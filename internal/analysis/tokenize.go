package analysis

import (
	"strings"
	"unicode"
)

// minTokenLen is the length a word must exceed to become a token
const minTokenLen = 2

// Tokenize normalizes raw text into index terms.
//
// The text is lowercased and every character outside [a-z0-9] and whitespace
// becomes a separator, so punctuation never merges adjacent words. Words of
// length <= 2 and stopwords are dropped. Source order is preserved.
func Tokenize(text string) []string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= minTokenLen || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenSet returns the distinct tokens as a membership set
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
