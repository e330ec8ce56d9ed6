package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"list"},
	Short:   "List past audits",
	Long: `List stored resume audits, newest first, with optional filters.

Examples:
  atsmatch history                      # List all audits
  atsmatch history --tier=low           # Audits that need work
  atsmatch history --since=7d           # Audits from the last 7 days
  atsmatch history --min-ats=80         # Only strong matches
  atsmatch history -o json              # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyTier   string
	historySince  string
	historyMinATS int
	historyLimit  int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyTier, "tier", "", "Filter by tier (strong, moderate, low, insufficient)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Filter by time (e.g., 7d, 2w, 1m)")
	historyCmd.Flags().IntVar(&historyMinATS, "min-ats", 0, "Minimum ATS score")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of results")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Build query options before touching the database
	opts := database.ListOptions{
		Limit: historyLimit,
	}

	if historyTier != "" {
		if !validTier(historyTier) {
			return fmt.Errorf("unknown tier: %s (use strong, moderate, low or insufficient)", historyTier)
		}
		tier := historyTier
		opts.Tier = &tier
	}

	if historyMinATS > 0 {
		minATS := historyMinATS
		opts.MinATS = &minATS
	}

	if historySince != "" {
		since, err := sinceTime(historySince)
		if err != nil {
			return err
		}
		opts.Since = &since
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	audits, err := db.ListAudits(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list audits: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), format(), audits)
}

func validTier(s string) bool {
	switch analysis.Tier(s) {
	case analysis.TierStrong, analysis.TierModerate, analysis.TierLow, analysis.TierInsufficient:
		return true
	default:
		return false
	}
}

// sinceTime converts a --since flag value into an absolute cutoff
func sinceTime(s string) (time.Time, error) {
	d, err := parseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration: %w", err)
	}
	return time.Now().Add(-d), nil
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}
	if value < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use h, d, w, or m)", unit)
	}
}
