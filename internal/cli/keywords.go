package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
	"github.com/vijay-prabhu/atsmatch/internal/document"
	"github.com/vijay-prabhu/atsmatch/internal/output"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [text...]",
	Short: "Extract the top keywords from a job description",
	Long: `Extract the keywords an ATS would look for, ranked by frequency.

Ties keep the order in which the words first appear. Common filler words
and words of two letters or fewer are ignored.

Examples:
  atsmatch keywords --file posting.txt
  atsmatch keywords --limit 10 "Go engineer with Kubernetes and Go tooling"
  cat posting.txt | atsmatch keywords --file -`,
	RunE: runKeywords,
}

var (
	keywordsFile      string
	keywordsLimit     int
	keywordsStopwords bool
)

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().StringVarP(&keywordsFile, "file", "f", "", "Read text from a file (or - for stdin)")
	keywordsCmd.Flags().IntVarP(&keywordsLimit, "limit", "n", analysis.KeywordLimit, "Maximum number of keywords")
	keywordsCmd.Flags().BoolVar(&keywordsStopwords, "stopwords", false, "List the ignored filler words and exit")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	if keywordsStopwords {
		return output.OutputTo(cmd.OutOrStdout(), format(), output.Keywords(analysis.StopWords()))
	}

	var doc document.Document
	switch {
	case keywordsFile != "" && len(args) > 0:
		return errors.New("use either --file or text arguments, not both")
	case keywordsFile != "":
		d, err := document.Load(keywordsFile, cfg.Documents.MaxBytes)
		if err != nil {
			return err
		}
		doc = d
	default:
		doc = document.FromString("args", strings.Join(args, " "))
	}

	if err := document.Require("text", doc); err != nil {
		return err
	}

	keywords := analysis.ExtractKeywords(doc.Text, keywordsLimit)
	logger.Debug("extracted keywords", "source", doc.Name, "count", len(keywords))

	return output.OutputTo(cmd.OutOrStdout(), format(), output.Keywords(keywords))
}
