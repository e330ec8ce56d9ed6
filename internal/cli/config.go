package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/atsmatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	// Config commands must work when the config file itself is broken
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the configuration file.

With --effective the file is loaded and validated, and the resulting
settings (defaults included) are printed instead.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowEffective bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&configShowEffective, "effective", false, "Show the loaded configuration including defaults")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use 'atsmatch config show' to view current configuration")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.Default()
	data, err := defaults.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append([]byte("# atsmatch configuration\n\n"), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Load what was written so the data directory matches the resolved database path
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.EnsureDirectories(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created config file at %s\n", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  atsmatch analyze --resume resume.pdf --jd-file posting.txt")
	fmt.Fprintln(out, "  atsmatch history")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configShowEffective {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		data, err := loaded.Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprintf(out, "# Effective config (file: %s)\n\n", configPath)
		fmt.Fprint(out, string(data))
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No config file found. Run 'atsmatch config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Fprintf(out, "# Config file: %s\n\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}
