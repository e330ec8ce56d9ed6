package analysis

import "sort"

// ExtractKeywords returns up to limit distinct tokens of text ranked by
// descending frequency. Equal counts keep first-occurrence order.
func ExtractKeywords(text string, limit int) []string {
	return rankKeywords(Tokenize(text), limit)
}

type termCount struct {
	term  string
	count int
}

func rankKeywords(tokens []string, limit int) []string {
	if limit <= 0 || len(tokens) == 0 {
		return []string{}
	}

	// Entries are appended in first-occurrence order; the stable sort then
	// only reorders by count, which is the tie-break.
	index := make(map[string]int, len(tokens))
	entries := make([]termCount, 0, len(tokens))
	for _, t := range tokens {
		if i, ok := index[t]; ok {
			entries[i].count++
			continue
		}
		index[t] = len(entries)
		entries = append(entries, termCount{term: t, count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	keywords := make([]string, len(entries))
	for i, e := range entries {
		keywords[i] = e.term
	}
	return keywords
}
