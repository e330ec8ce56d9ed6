package config

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
	Output    OutputConfig    `toml:"output"`
	History   HistoryConfig   `toml:"history"`
	Documents DocumentsConfig `toml:"documents"`
	MCP       MCPConfig       `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// OutputConfig contains default output settings
type OutputConfig struct {
	Format string `toml:"format"`
}

// HistoryConfig controls audit persistence
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Keep    int  `toml:"keep"` // 0 keeps everything
}

// DocumentsConfig contains document loading limits
type DocumentsConfig struct {
	MaxBytes int64 `toml:"max_bytes"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/atsmatch/atsmatch.db",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    500,
		},
		Documents: DocumentsConfig{
			MaxBytes: 10 << 20,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
