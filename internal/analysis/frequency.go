package analysis

import "sort"

// FrequencyVector maps a term to its occurrence count within one document.
// It is immutable once built by TermFrequency.
type FrequencyVector struct {
	counts map[string]int
}

// TermFrequency counts token occurrences
func TermFrequency(tokens []string) FrequencyVector {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return FrequencyVector{counts: counts}
}

// Count returns the occurrence count of term, or 0 when the term is absent.
// Lookups never insert into the vector.
func (v FrequencyVector) Count(term string) int {
	n, ok := v.counts[term]
	if !ok {
		return 0
	}
	return n
}

// Len returns the number of distinct terms
func (v FrequencyVector) Len() int {
	return len(v.counts)
}

// Terms returns the distinct terms in lexical order
func (v FrequencyVector) Terms() []string {
	terms := make([]string, 0, len(v.counts))
	for t := range v.counts {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// squaredNorm is the sum of squared counts
func (v FrequencyVector) squaredNorm() int64 {
	var sum int64
	for _, n := range v.counts {
		sum += int64(n) * int64(n)
	}
	return sum
}
