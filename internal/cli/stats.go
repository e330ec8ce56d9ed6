package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show audit statistics",
	Long: `Display aggregate statistics about your resume audits.

Examples:
  atsmatch stats             # Overall stats
  atsmatch stats --since=7d  # Stats for last 7 days
  atsmatch stats --detailed  # Best audits and a daily ATS chart`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsSince    string
	statsDetailed bool
)

// activityDays is the length of the detailed activity chart
const activityDays = 14

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsSince, "since", "", "Time period (e.g., 7d, 2w, 1m)")
	statsCmd.Flags().BoolVar(&statsDetailed, "detailed", false, "Show detailed statistics with breakdowns")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Parse time filter
	var since *time.Time
	if statsSince != "" {
		t, err := sinceTime(statsSince)
		if err != nil {
			return err
		}
		since = &t
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if !statsDetailed {
		stats, err := db.GetStats(ctx, since)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		return output.OutputTo(out, format(), stats)
	}

	detailed, err := getDetailedStats(ctx, db, since, time.Now())
	if err != nil {
		return fmt.Errorf("failed to get detailed stats: %w", err)
	}

	if format() == "json" {
		return output.JSONTo(out, detailed)
	}

	printDetailedStats(out, detailed)
	return nil
}

// DetailedStats contains extended statistics
type DetailedStats struct {
	Basic          *database.Stats  `json:"basic"`
	Best           []database.Audit `json:"best"`
	RecentActivity []ActivityStat   `json:"recent_activity"`
}

// ActivityStat shows audits run on one day
type ActivityStat struct {
	Date   string  `json:"date"`
	Count  int     `json:"count"`
	AvgATS float64 `json:"avg_ats_score"`
}

func getDetailedStats(ctx context.Context, db *database.DB, since *time.Time, now time.Time) (*DetailedStats, error) {
	basic, err := db.GetStats(ctx, since)
	if err != nil {
		return nil, err
	}

	audits, err := db.ListAudits(ctx, database.ListOptions{Since: since})
	if err != nil {
		return nil, err
	}

	// Best five by ATS score, newest first on ties
	best := make([]database.Audit, len(audits))
	copy(best, audits)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].ATSScore > best[j].ATSScore
	})
	if len(best) > 5 {
		best = best[:5]
	}

	return &DetailedStats{
		Basic:          basic,
		Best:           best,
		RecentActivity: dailyActivity(audits, now, activityDays),
	}, nil
}

// dailyActivity buckets audits by local calendar day for the last n days, oldest first
func dailyActivity(audits []database.Audit, now time.Time, n int) []ActivityStat {
	counts := make(map[string]int)
	totals := make(map[string]int)
	for _, a := range audits {
		day := a.CreatedAt.In(now.Location()).Format("2006-01-02")
		counts[day]++
		totals[day] += a.ATSScore
	}

	activity := make([]ActivityStat, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		stat := ActivityStat{Date: day, Count: counts[day]}
		if stat.Count > 0 {
			stat.AvgATS = float64(totals[day]) / float64(stat.Count)
		}
		activity = append(activity, stat)
	}
	return activity
}

func printDetailedStats(w io.Writer, d *DetailedStats) {
	fmt.Fprintln(w, "Resume Audit Statistics (Detailed)")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	if err := output.TableTo(w, d.Basic); err != nil {
		fmt.Fprintf(w, "  %v\n", err)
	}
	fmt.Fprintln(w)

	if len(d.Best) > 0 {
		fmt.Fprintln(w, "Best Matches")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for _, a := range d.Best {
			fmt.Fprintf(w, "  %3d%%  %-30s %s\n", a.ATSScore, truncateLabel(a.DisplayName(), 30), a.CreatedAt.Format("Jan 02"))
		}
		fmt.Fprintln(w)
	}

	// Activity chart (ASCII), bar length is the day's average ATS score
	fmt.Fprintf(w, "Average ATS Score (Last %d Days)\n", activityDays)
	fmt.Fprintln(w, strings.Repeat("-", 30))
	active := false
	for _, a := range d.RecentActivity {
		if a.Count == 0 {
			continue
		}
		active = true
		bar := strings.Repeat("█", int(a.AvgATS)/5)
		dayLabel := a.Date[5:] // MM-DD
		fmt.Fprintf(w, "  %s %-20s %.0f%% (%d)\n", dayLabel, bar, a.AvgATS, a.Count)
	}
	if !active {
		fmt.Fprintf(w, "  No audits in the last %d days\n", activityDays)
	}
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
