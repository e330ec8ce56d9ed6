package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vijay-prabhu/atsmatch/internal/analysis"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a Terminal for w. Only an *os.File attached to a
// terminal gets color.
func NewTerminal(w io.Writer) *Terminal {
	isTerminal := false
	if f, ok := w.(*os.File); ok {
		isTerminal = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "",
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// TierColor returns the color used for a match tier
func TierColor(tier analysis.Tier) string {
	switch tier {
	case analysis.TierStrong:
		return ColorGreen
	case analysis.TierModerate:
		return ColorYellow
	case analysis.TierLow:
		return ColorRed
	default:
		return ColorGray
	}
}
