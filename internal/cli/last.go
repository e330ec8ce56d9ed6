package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the score of the most recent audit",
	Long: `Print a one-line snapshot of the most recent audit:

  Match: 72% | ATS: 68%

Use 'atsmatch show last' for the full audit.`,
	Args: cobra.NoArgs,
	RunE: runLast,
}

func init() {
	rootCmd.AddCommand(lastCmd)
}

func runLast(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	audit, err := db.LatestAudit(ctx)
	if errors.Is(err, database.ErrAuditNotFound) {
		if format() == "json" {
			return output.JSONTo(out, nil)
		}
		fmt.Fprintln(out, "No audits yet. Run 'atsmatch analyze' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if format() == "json" {
		return output.JSONTo(out, audit)
	}

	t := NewTerminal(out)
	fmt.Fprintln(out, t.Color(TierColor(analysis.Tier(audit.Tier)), output.Snapshot(audit)))
	return nil
}
