package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleResume = "Python developer with AWS and Docker experience, reduced latency by 30%"
	sampleJD     = "Looking for a Python developer skilled in AWS Docker Kubernetes and CI/CD"
)

func TestExplain_SampleScenario(t *testing.T) {
	b := Explain(sampleResume, sampleJD)

	assert.Equal(t, []string{"looking", "python", "developer", "skilled", "aws", "docker", "kubernetes"}, b.Keywords)
	assert.Equal(t, []string{"python", "developer", "aws", "docker"}, b.Matched)
	assert.Equal(t, []string{"looking", "skilled", "kubernetes"}, b.Missing)
	assert.InDelta(t, 4.0/7.0, b.KeywordScore, 1e-12)
	assert.InDelta(t, 0.6172133998, b.Similarity, 1e-9)

	r := b.Result
	assert.Greater(t, r.MatchScore, 50)
	assert.Equal(t, 57, r.MatchScore)
	assert.Equal(t, 59, r.ATSScore)
	assert.Equal(t, []string{"looking", "skilled", "kubernetes"}, r.MissingKeywords)
	assert.Equal(t, TierLow, b.Tier)
	assert.Equal(t, SummaryLow, r.Summary)
}

func TestAnalyze_AllStopwordJobDescription(t *testing.T) {
	r := Analyze(sampleResume, "the and for")

	assert.Equal(t, 0, r.MatchScore)
	assert.Equal(t, 0, r.ATSScore)
	assert.NotNil(t, r.MissingKeywords)
	assert.Empty(t, r.MissingKeywords)
	assert.Equal(t, SummaryInsufficient, r.Summary)
	assert.Equal(t, TierInsufficient, Explain(sampleResume, "the and for").Tier)
}

func TestAnalyze_EmptyResume(t *testing.T) {
	r := Analyze("", sampleJD)

	assert.Equal(t, 0, r.MatchScore)
	assert.Equal(t, 0, r.ATSScore)
	assert.Len(t, r.MissingKeywords, 7)
	assert.Equal(t, SummaryLow, r.Summary)
}

func TestAnalyze_PerfectMatch(t *testing.T) {
	jd := "golang kafka postgres kubernetes terraform"
	r := Analyze(jd, jd)

	assert.Equal(t, 100, r.MatchScore)
	assert.Equal(t, 100, r.ATSScore)
	assert.Empty(t, r.MissingKeywords)
	assert.Equal(t, SummaryStrong, r.Summary)
}

func TestAnalyze_ModerateNamesThreeKeywords(t *testing.T) {
	// 7 of 10 keywords present with proportional usage lands in the moderate tier
	jd := "alpha1 bravo2 charlie3 delta4 echo5 foxtrot6 golf7 hotel8 india9 juliet10"
	resume := "alpha1 bravo2 charlie3 delta4 echo5 foxtrot6 golf7"

	b := Explain(resume, jd)
	require.Equal(t, TierModerate, b.Tier, "ats=%d", b.Result.ATSScore)
	assert.Equal(t, "Moderate match. Add keywords like hotel8, india9, juliet10.", b.Result.Summary)
}

func TestAnalyze_MissingTruncatedToEight(t *testing.T) {
	words := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("term%02d", i))
	}
	jd := strings.Join(words, " ")

	b := Explain("unrelated words only", jd)
	assert.Len(t, b.Keywords, KeywordLimit)
	assert.Len(t, b.Missing, KeywordLimit)
	assert.Equal(t, words[:MissingLimit], b.Result.MissingKeywords)
}

func TestAnalyze_ScoreProperties(t *testing.T) {
	pairs := [][2]string{
		{sampleResume, sampleJD},
		{"", ""},
		{"kafka", "kafka kafka kafka"},
		{"Go, Rust & C++", "Rust engineers wanted: Rust, Tokio, async, embedded systems"},
		{strings.Repeat("docker ", 100), "docker kubernetes helm"},
	}

	for _, p := range pairs {
		b := Explain(p[0], p[1])
		r := b.Result

		assert.GreaterOrEqual(t, r.MatchScore, 0)
		assert.LessOrEqual(t, r.MatchScore, 100)
		assert.GreaterOrEqual(t, r.ATSScore, 0)
		assert.LessOrEqual(t, r.ATSScore, 100)
		assert.LessOrEqual(t, len(r.MissingKeywords), MissingLimit)

		union := append(append([]string{}, b.Matched...), b.Missing...)
		assert.ElementsMatch(t, b.Keywords, union)

		resumeTokens := tokenSet(Tokenize(p[0]))
		for _, m := range b.Missing {
			assert.NotContains(t, b.Matched, m)
			_, present := resumeTokens[m]
			assert.False(t, present, "missing keyword %q found in resume", m)
		}
		for _, m := range r.MissingKeywords {
			assert.Contains(t, b.Keywords, m)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	first := Analyze(sampleResume, sampleJD)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Analyze(sampleResume, sampleJD))
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	want := Analyze(sampleResume, sampleJD)

	var wg sync.WaitGroup
	results := make([]MatchResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Analyze(sampleResume, sampleJD)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestMatchResult_JSON(t *testing.T) {
	data, err := json.Marshal(Analyze(sampleResume, "the and for"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"matchScore": 0,
		"atsScore": 0,
		"missingKeywords": [],
		"summary": "Insufficient job description content to score."
	}`, string(data))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierStrong},
		{80, TierStrong},
		{79, TierModerate},
		{60, TierModerate},
		{59, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Moderate match. Add keywords like kafka.", Summarize(TierModerate, []string{"kafka"}))
	assert.Equal(t, summaryModerateFull, Summarize(TierModerate, nil))
	assert.Equal(t, SummaryStrong, Summarize(TierStrong, []string{"kafka"}))
	assert.Equal(t, SummaryLow, Summarize(TierLow, []string{"kafka"}))
}
