package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/config"
	"github.com/vijay-prabhu/atsmatch/internal/database"
	"github.com/vijay-prabhu/atsmatch/internal/logging"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	verbose    bool

	// Set by PersistentPreRunE for every command
	cfg    *config.Config
	logger = logging.Discard()
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "atsmatch",
	Short: "Score a resume against a job description the way an ATS would",
	Long: `atsmatch compares a resume with a job description and reports how well
they match.

It provides:
  - Keyword coverage and cosine similarity scoring
  - An ATS compatibility estimate with the keywords you are missing
  - A local history of audits with stats and export
  - MCP server for AI assistant integration`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/atsmatch/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "",
		"output format (table, json) (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			// Load treats a missing file as defaults
			path = "config.toml"
		}
		configPath = path
	}
}

// setup loads the configuration and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	switch outputFmt {
	case "", "table", "json":
	default:
		return fmt.Errorf("unknown output format: %s (use table or json)", outputFmt)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.Format = logging.Format(cfg.Logging.Format)
	if level, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		logCfg.Level = level
	}
	if verbose {
		logCfg.Level = logging.DebugLevel
	}
	logger = logging.New(logCfg)
	logger.Debug("config loaded", "path", configPath, "database", cfg.Database.Path)
	return nil
}

// openDB opens the audit database named in the configuration
func openDB() (*database.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// format returns the output format from --output, falling back to the config
func format() string {
	if outputFmt != "" {
		return outputFmt
	}
	if cfg != nil && cfg.Output.Format != "" {
		return cfg.Output.Format
	}
	return "table"
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "atsmatch %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", buildTime)
	},
}
