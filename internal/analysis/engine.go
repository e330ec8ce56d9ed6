package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Scoring policy constants
const (
	KeywordLimit        = 30 // keywords extracted from the job description
	MissingLimit        = 8  // missing keywords reported to the caller
	SummaryKeywordLimit = 3  // missing keywords named in a moderate summary

	StrongThreshold   = 80
	ModerateThreshold = 60

	keywordWeight    = 0.65
	similarityWeight = 0.35
)

// Tier classifies an ATS score
type Tier string

const (
	TierStrong       Tier = "strong"
	TierModerate     Tier = "moderate"
	TierLow          Tier = "low"
	TierInsufficient Tier = "insufficient"
)

// Summary messages
const (
	SummaryStrong       = "Strong ATS alignment. Resume is highly relevant."
	SummaryLow          = "Low ATS match. Resume needs optimization."
	SummaryInsufficient = "Insufficient job description content to score."
	summaryModerate     = "Moderate match. Add keywords like %s."
	summaryModerateFull = "Moderate match. Keywords are covered; mirror the job description's wording more closely."
)

// MatchResult is the outcome of comparing one résumé against one job description
type MatchResult struct {
	MatchScore      int      `json:"matchScore"`
	ATSScore        int      `json:"atsScore"`
	MissingKeywords []string `json:"missingKeywords"`
	Summary         string   `json:"summary"`
}

// Breakdown carries a MatchResult together with the intermediate signals
// that produced it.
type Breakdown struct {
	Result       MatchResult `json:"result"`
	Tier         Tier        `json:"tier"`
	Keywords     []string    `json:"keywords"`
	Matched      []string    `json:"matched"`
	Missing      []string    `json:"missing"`
	KeywordScore float64     `json:"keyword_score"`
	Similarity   float64     `json:"similarity"`
}

// Analyze scores resumeText against jdText. It never fails: degenerate
// inputs resolve to zero scores and an explanatory summary. Callers are
// expected to reject empty documents before calling.
func Analyze(resumeText, jdText string) MatchResult {
	return Explain(resumeText, jdText).Result
}

// Explain runs the same computation as Analyze and keeps the diagnostics
func Explain(resumeText, jdText string) Breakdown {
	resumeTokens := Tokenize(resumeText)
	jdTokens := Tokenize(jdText)

	keywords := rankKeywords(jdTokens, KeywordLimit)
	if len(keywords) == 0 {
		return Breakdown{
			Result: MatchResult{
				MissingKeywords: []string{},
				Summary:         SummaryInsufficient,
			},
			Tier:     TierInsufficient,
			Keywords: keywords,
			Matched:  []string{},
			Missing:  []string{},
		}
	}

	matched, missing := partition(keywords, tokenSet(resumeTokens))

	keywordScore := float64(len(matched)) / float64(len(keywords))
	similarity := CosineSimilarity(TermFrequency(resumeTokens), TermFrequency(jdTokens))

	atsScore := int(math.Round(math.Min(100, (keywordScore*keywordWeight+similarity*similarityWeight)*100)))
	tier := TierFor(atsScore)

	return Breakdown{
		Result: MatchResult{
			MatchScore:      int(math.Round(keywordScore * 100)),
			ATSScore:        atsScore,
			MissingKeywords: head(missing, MissingLimit),
			Summary:         Summarize(tier, missing),
		},
		Tier:         tier,
		Keywords:     keywords,
		Matched:      matched,
		Missing:      missing,
		KeywordScore: keywordScore,
		Similarity:   similarity,
	}
}

// partition splits keywords by membership in the résumé token set,
// preserving keyword order in both halves.
func partition(keywords []string, resume map[string]struct{}) (matched, missing []string) {
	matched = make([]string, 0, len(keywords))
	missing = make([]string, 0, len(keywords))
	for _, k := range keywords {
		if _, ok := resume[k]; ok {
			matched = append(matched, k)
		} else {
			missing = append(missing, k)
		}
	}
	return matched, missing
}

// TierFor maps an ATS score to its tier
func TierFor(atsScore int) Tier {
	switch {
	case atsScore >= StrongThreshold:
		return TierStrong
	case atsScore >= ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// Summarize builds the human-readable message for a tier
func Summarize(tier Tier, missing []string) string {
	switch tier {
	case TierStrong:
		return SummaryStrong
	case TierModerate:
		named := head(missing, SummaryKeywordLimit)
		if len(named) == 0 {
			return summaryModerateFull
		}
		return fmt.Sprintf(summaryModerate, strings.Join(named, ", "))
	case TierInsufficient:
		return SummaryInsufficient
	default:
		return SummaryLow
	}
}

// head returns a copy of at most n leading elements
func head(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
