package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/auditor"
	"github.com/vijay-prabhu/atsmatch/internal/database"
)

func sampleAudit() database.Audit {
	label := "Stripe backend"
	return database.Audit{
		ID:              "0f8fad5b-d9cb-469f-a165-70867728950e",
		Label:           &label,
		ResumeSource:    "resume.pdf",
		JobSource:       "stripe.txt",
		MatchScore:      57,
		ATSScore:        59,
		MissingKeywords: []string{"kubernetes", "terraform"},
		Summary:         analysis.SummaryLow,
		Tier:            "low",
		CreatedAt:       time.Now(),
	}
}

func TestOutputTo_JSONMatchResult(t *testing.T) {
	var buf bytes.Buffer
	r := analysis.MatchResult{MatchScore: 57, ATSScore: 59, MissingKeywords: []string{"kubernetes"}, Summary: analysis.SummaryLow}

	if err := OutputTo(&buf, "json", r); err != nil {
		t.Fatalf("OutputTo() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"matchScore", "atsScore", "missingKeywords", "summary"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, buf.String())
		}
	}
	if len(decoded) != 4 {
		t.Errorf("expected exactly 4 fields, got %d", len(decoded))
	}
}

func TestOutputTo_UnknownFormat(t *testing.T) {
	if err := OutputTo(&bytes.Buffer{}, "xml", analysis.MatchResult{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTableTo_UnsupportedType(t *testing.T) {
	if err := TableTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestTableTo_MatchResult(t *testing.T) {
	var buf bytes.Buffer
	r := analysis.MatchResult{MissingKeywords: []string{}, Summary: analysis.SummaryInsufficient}

	if err := TableTo(&buf, r); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "(none)") {
		t.Errorf("expected (none) for empty missing keywords, got:\n%s", out)
	}
	if !strings.Contains(out, analysis.SummaryInsufficient) {
		t.Errorf("expected summary in output, got:\n%s", out)
	}
}

func TestTableTo_Report(t *testing.T) {
	var buf bytes.Buffer
	audit := sampleAudit()
	rep := &auditor.Report{
		Breakdown: analysis.Explain("python aws docker", "python aws docker kubernetes"),
		Audit:     &audit,
	}

	if err := TableTo(&buf, rep); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Keyword overlap:  3/4", "kubernetes", "Saved as:         " + audit.ID} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableTo_Audits(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, []database.Audit{sampleAudit()}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"0f8fad5b", "Stripe backend", "59%", "today"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := TableTo(&buf, []database.Audit{}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No audits found.") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}
}

func TestTableTo_Stats(t *testing.T) {
	var buf bytes.Buffer
	stats := &database.Stats{
		TotalAudits:  2,
		AvgATSScore:  70,
		BestATSScore: 85,
		ByTier:       map[string]int{"strong": 1, "low": 1},
		TopMissing:   []database.KeywordCount{{Keyword: "kubernetes", Count: 2}},
	}

	if err := TableTo(&buf, stats); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "low:") > strings.Index(out, "strong:") {
		t.Errorf("tiers not sorted:\n%s", out)
	}
	if !strings.Contains(out, "kubernetes") {
		t.Errorf("top missing not printed:\n%s", out)
	}
}

func TestSnapshot(t *testing.T) {
	a := sampleAudit()
	if got, want := Snapshot(&a), "Match: 57% | ATS: 59%"; got != want {
		t.Errorf("Snapshot() = %q, want %q", got, want)
	}
}

func TestTableTo_Keywords(t *testing.T) {
	var buf bytes.Buffer
	if err := TableTo(&buf, Keywords{"kafka", "golang"}); err != nil {
		t.Fatalf("TableTo() error: %v", err)
	}
	if want := " 1. kafka\n 2. golang\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
