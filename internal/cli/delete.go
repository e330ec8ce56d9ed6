package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id|last>",
	Short: "Delete an audit",
	Long: `Delete a stored audit.

The identifier can be "last", a full audit ID, or a unique ID prefix.

Examples:
  atsmatch delete last
  atsmatch delete 3f9c2a1b`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old audits",
	Long: `Delete all but the newest audits.

Without --keep the history.keep value from the config is used.

Examples:
  atsmatch prune --keep 50
  atsmatch prune --keep 0   # delete everything`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

var pruneKeep int

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().IntVar(&pruneKeep, "keep", -1, "Number of newest audits to keep (default from config)")
}

// DeleteResult reports what a delete or prune removed
type DeleteResult struct {
	Deleted int    `json:"deleted"`
	ID      string `json:"id,omitempty"`
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	identifier := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	audit, err := db.ResolveAudit(ctx, identifier)
	if err != nil {
		if errors.Is(err, database.ErrAuditNotFound) {
			return fmt.Errorf("no audit matches %q", identifier)
		}
		return fmt.Errorf("failed to find audit: %w", err)
	}

	if err := db.DeleteAudit(ctx, audit.ID); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	logger.Info("audit deleted", "id", audit.ID)

	out := cmd.OutOrStdout()
	if format() == "json" {
		return output.JSONTo(out, DeleteResult{Deleted: 1, ID: audit.ID})
	}

	fmt.Fprintf(out, "Deleted: %s (%s)\n", audit.DisplayName(), audit.ID)
	return nil
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	keep := pruneKeep
	if !cmd.Flags().Changed("keep") {
		keep = cfg.History.Keep
	}
	if keep < 0 {
		return fmt.Errorf("--keep must not be negative")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := db.PruneAudits(ctx, keep)
	if err != nil {
		return fmt.Errorf("failed to prune: %w", err)
	}
	logger.Info("audits pruned", "deleted", deleted, "keep", keep)

	out := cmd.OutOrStdout()
	if format() == "json" {
		return output.JSONTo(out, DeleteResult{Deleted: deleted})
	}

	fmt.Fprintf(out, "Deleted %d audit(s), kept the newest %d.\n", deleted, keep)
	return nil
}
