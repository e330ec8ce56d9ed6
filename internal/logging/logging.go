package logging

import (
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Level is a configured log level name
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Format selects the log encoding
type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

// Config configures a logger
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// DefaultConfig logs warnings and above as text to stderr.
// Stdout is left for command output.
func DefaultConfig() Config {
	return Config{
		Level:  WarnLevel,
		Format: TextFormat,
		Output: os.Stderr,
	}
}

// ParseLevel validates a level name
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return l, nil
	default:
		return "", fmt.Errorf("unknown log level: %s", s)
	}
}

func (l Level) charm() charmlog.Level {
	switch l {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.WarnLevel
	}
}

// New builds a logger from cfg
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level.charm(),
		Prefix:          "atsmatch",
	})
	if cfg.Format == JSONFormat {
		logger.SetFormatter(charmlog.JSONFormatter)
	} else {
		logger.SetFormatter(charmlog.TextFormatter)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}
