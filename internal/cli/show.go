package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id|last>",
	Short: "Show audit details",
	Long: `Show a stored audit.

The identifier can be:
  - last, for the most recent audit
  - A full audit ID
  - A unique ID prefix, as shown by 'atsmatch history'

Examples:
  atsmatch show last
  atsmatch show 3f9c2a1b`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	audit, err := db.ResolveAudit(ctx, args[0])
	if err != nil {
		if errors.Is(err, database.ErrAuditNotFound) {
			return fmt.Errorf("no audit matches %q", args[0])
		}
		return fmt.Errorf("database error: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), format(), audit)
}
