package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/auditor"
	"github.com/vijay-prabhu/atsmatch/internal/database"
)

// Keywords is a ranked keyword list
type Keywords []string

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case analysis.MatchResult:
		return matchResult(w, v)
	case *auditor.Report:
		return report(w, v)
	case []database.Audit:
		return auditsTable(w, v)
	case *database.Audit:
		return auditDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case Keywords:
		return keywordList(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// Snapshot returns the one-line dashboard view of an audit
func Snapshot(a *database.Audit) string {
	return fmt.Sprintf("Match: %d%% | ATS: %d%%", a.MatchScore, a.ATSScore)
}

func matchResult(w io.Writer, r analysis.MatchResult) error {
	fmt.Fprintf(w, "Match score:      %d%%\n", r.MatchScore)
	fmt.Fprintf(w, "ATS score:        %d%%\n", r.ATSScore)
	fmt.Fprintf(w, "Missing keywords: %s\n", joinOrNone(r.MissingKeywords))
	fmt.Fprintf(w, "Summary:          %s\n", r.Summary)
	return nil
}

func report(w io.Writer, r *auditor.Report) error {
	if err := matchResult(w, r.Result()); err != nil {
		return err
	}

	b := r.Breakdown
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Breakdown")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Tier:             %s\n", b.Tier)
	fmt.Fprintf(w, "Keyword overlap:  %d/%d (%.1f%%)\n", len(b.Matched), len(b.Keywords), b.KeywordScore*100)
	fmt.Fprintf(w, "Similarity:       %.3f\n", b.Similarity)
	fmt.Fprintf(w, "Matched:          %s\n", joinOrNone(b.Matched))
	fmt.Fprintf(w, "All missing:      %s\n", joinOrNone(b.Missing))

	if r.Audit != nil {
		fmt.Fprintf(w, "Saved as:         %s\n", r.Audit.ID)
	}
	return nil
}

func auditsTable(w io.Writer, audits []database.Audit) error {
	if len(audits) == 0 {
		fmt.Fprintln(w, "No audits found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Label", "Match", "ATS", "Tier", "When")

	for _, a := range audits {
		row := []string{
			shortID(a.ID),
			truncate(a.DisplayName(), 30),
			strconv.Itoa(a.MatchScore) + "%",
			strconv.Itoa(a.ATSScore) + "%",
			a.Tier,
			formatAge(a.DaysSince()),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func auditDetail(w io.Writer, a *database.Audit) error {
	fmt.Fprintf(w, "Audit:            %s\n", a.ID)
	if a.Label != nil && *a.Label != "" {
		fmt.Fprintf(w, "Label:            %s\n", *a.Label)
	}
	fmt.Fprintf(w, "Resume:           %s\n", a.ResumeSource)
	fmt.Fprintf(w, "Job description:  %s\n", a.JobSource)
	fmt.Fprintf(w, "Created:          %s\n", a.CreatedAt.Format("Jan 02, 2006 15:04"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", Snapshot(a))
	fmt.Fprintf(w, "Tier:             %s\n", a.Tier)
	fmt.Fprintf(w, "Missing keywords: %s\n", joinOrNone(a.MissingKeywords))
	fmt.Fprintf(w, "Summary:          %s\n", a.Summary)
	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Resume Audit Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total audits:           %d\n", s.TotalAudits)
	if s.TotalAudits == 0 {
		return nil
	}
	fmt.Fprintf(w, "Avg match score:        %.1f%%\n", s.AvgMatchScore)
	fmt.Fprintf(w, "Avg ATS score:          %.1f%%\n", s.AvgATSScore)
	fmt.Fprintf(w, "Best ATS score:         %d%%\n", s.BestATSScore)

	tiers := make([]string, 0, len(s.ByTier))
	for tier := range s.ByTier {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		fmt.Fprintf(w, "  %-21s %d\n", tier+":", s.ByTier[tier])
	}

	if len(s.TopMissing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most often missing")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for _, k := range s.TopMissing {
			fmt.Fprintf(w, "  %-20s %d\n", k.Keyword, k.Count)
		}
	}
	return nil
}

func keywordList(w io.Writer, keywords Keywords) error {
	if len(keywords) == 0 {
		fmt.Fprintln(w, "No keywords found.")
		return nil
	}
	for i, k := range keywords {
		fmt.Fprintf(w, "%2d. %s\n", i+1, k)
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatAge(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
