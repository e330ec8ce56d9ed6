package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/auditor"
	"github.com/vijay-prabhu/atsmatch/internal/document"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: `Score a resume against a job description.

The resume can be a PDF, DOCX or plain text file. The job description is
given inline with --jd or read from a file with --jd-file. Use "-" to read
either document from stdin.

Examples:
  atsmatch analyze --resume resume.pdf --jd-file posting.txt
  atsmatch analyze --resume resume.txt --jd "Senior Go engineer, Kubernetes, AWS"
  pbpaste | atsmatch analyze --resume resume.pdf --jd-file - --label acme
  atsmatch analyze --resume resume.pdf --jd-file posting.txt -o json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeResume   string
	analyzeJD       string
	analyzeJDFile   string
	analyzeLabel    string
	analyzeNoSave   bool
	analyzeDetailed bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Resume file (pdf, docx, txt, or - for stdin)")
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Job description text")
	analyzeCmd.Flags().StringVarP(&analyzeJDFile, "jd-file", "j", "", "Job description file (or - for stdin)")
	analyzeCmd.Flags().StringVarP(&analyzeLabel, "label", "l", "", "Label stored with the audit (e.g., company name)")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not store the audit in history")
	analyzeCmd.Flags().BoolVarP(&analyzeDetailed, "detailed", "d", false, "Show matched keywords, the full missing list and similarity")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-file")
	analyzeCmd.MarkFlagsOneRequired("jd", "jd-file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if analyzeResume == document.StdinName && analyzeJDFile == document.StdinName {
		return errors.New("only one of --resume and --jd-file can read stdin")
	}

	resume, err := document.Load(analyzeResume, cfg.Documents.MaxBytes)
	if err != nil {
		return err
	}

	job := document.FromString("inline", analyzeJD)
	if analyzeJDFile != "" {
		job, err = document.Load(analyzeJDFile, cfg.Documents.MaxBytes)
		if err != nil {
			return err
		}
	}

	// History is optional; without it no database is opened
	var store auditor.Store
	save := cfg.History.Enabled && !analyzeNoSave
	if save {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	a := auditor.New(store, auditor.Options{Save: save, Keep: cfg.History.Keep}, logger)
	report, err := a.Run(ctx, auditor.Request{
		Label:  strings.TrimSpace(analyzeLabel),
		Resume: resume,
		Job:    job,
	})
	if err != nil {
		if errors.Is(err, document.ErrEmptyDocument) {
			return fmt.Errorf("%w: both a resume and a job description are required", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if format() == "json" {
		if analyzeDetailed {
			return output.JSONTo(out, report)
		}
		return output.JSONTo(out, report.Result())
	}

	t := NewTerminal(out)
	tier := report.Breakdown.Tier
	fmt.Fprintln(out, t.Color(TierColor(tier), strings.ToUpper(string(tier))))
	if analyzeDetailed {
		return output.TableTo(out, report)
	}
	if err := output.TableTo(out, report.Result()); err != nil {
		return err
	}
	if report.Audit != nil {
		fmt.Fprintln(out, t.Color(ColorGray, fmt.Sprintf("Saved audit %s", report.Audit.ID)))
	}
	return nil
}
