package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search audits",
	Long: `Search stored audits by label, resume file or job description source.

Examples:
  atsmatch search stripe
  atsmatch search resume-v3.pdf
  atsmatch search "platform engineer"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.SearchAudits(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if format() == "table" {
		if len(results) == 0 {
			fmt.Fprintf(out, "No audits found matching: %s\n", query)
			return nil
		}
		fmt.Fprintf(out, "Found %d audit(s) matching: %s\n\n", len(results), query)
	}

	return output.OutputTo(out, format(), results)
}
