package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/database"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audits to CSV or JSON",
	Long: `Export stored resume audits.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of audit objects

Examples:
  atsmatch export --format=csv > audits.csv
  atsmatch export --format=json > audits.json
  atsmatch export --format=csv --since=1m > last-month.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportSince  string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "Only audits newer than this (e.g., 7d, 2w, 1m)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	opts := database.ListOptions{}
	if exportSince != "" {
		since, err := sinceTime(exportSince)
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

	out := cmd.OutOrStdout()
	if exportFormat == "json" {
		return exportJSON(out, audits)
	}
	return exportCSV(out, audits)
}

// ExportRow is the flat form of an audit written by export
type ExportRow struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	ResumeSource    string  `json:"resume_source"`
	JobSource       string  `json:"job_source"`
	MatchScore      int     `json:"match_score"`
	ATSScore        int     `json:"ats_score"`
	Tier            string  `json:"tier"`
	KeywordScore    float64 `json:"keyword_score"`
	Similarity      float64 `json:"similarity"`
	MissingKeywords string  `json:"missing_keywords"`
	Summary         string  `json:"summary"`
	CreatedAt       string  `json:"created_at"`
}

func toExportRow(a database.Audit) ExportRow {
	row := ExportRow{
		ID:              a.ID,
		ResumeSource:    a.ResumeSource,
		JobSource:       a.JobSource,
		MatchScore:      a.MatchScore,
		ATSScore:        a.ATSScore,
		Tier:            a.Tier,
		KeywordScore:    a.KeywordScore,
		Similarity:      a.Similarity,
		MissingKeywords: strings.Join(a.MissingKeywords, ";"),
		Summary:         a.Summary,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
	if a.Label != nil {
		row.Label = *a.Label
	}
	return row
}

func exportCSV(out io.Writer, audits []database.Audit) error {
	w := csv.NewWriter(out)

	header := []string{
		"id", "label", "resume_source", "job_source", "match_score", "ats_score",
		"tier", "keyword_score", "similarity", "missing_keywords", "summary", "created_at",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range audits {
		row := toExportRow(a)
		record := []string{
			row.ID,
			row.Label,
			row.ResumeSource,
			row.JobSource,
			strconv.Itoa(row.MatchScore),
			strconv.Itoa(row.ATSScore),
			row.Tier,
			strconv.FormatFloat(row.KeywordScore, 'f', 4, 64),
			strconv.FormatFloat(row.Similarity, 'f', 4, 64),
			row.MissingKeywords,
			row.Summary,
			row.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(out io.Writer, audits []database.Audit) error {
	rows := make([]ExportRow, len(audits))
	for i, a := range audits {
		rows[i] = toExportRow(a)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
