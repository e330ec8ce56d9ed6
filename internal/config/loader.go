package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath returns ~/.config/atsmatch/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "atsmatch", "config.toml"), nil
}

// Load reads and parses the configuration file.
// A missing file is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	return err
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got '%s'", c.Logging.Level))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format))
	}

	// Output validation
	if c.Output.Format != "table" && c.Output.Format != "json" {
		errs = append(errs, fmt.Errorf("output.format must be 'table' or 'json', got '%s'", c.Output.Format))
	}

	// History validation
	if c.History.Keep < 0 {
		errs = append(errs, errors.New("history.keep must not be negative"))
	}

	// Documents validation
	if c.Documents.MaxBytes < 0 {
		errs = append(errs, errors.New("documents.max_bytes must not be negative"))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the database directory
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
