package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Condense flattens whitespace runs into single spaces and trims the result
// to at most limit characters, ellipsis-marked.
func Condense(s string, limit int) string {
	if s == "" {
		return ""
	}
	flat := strings.Join(strings.Fields(s), " ")
	if limit > 0 {
		r := []rune(flat)
		if len(r) > limit {
			// The ellipsis counts against the limit.
			flat = string(r[:limit-1]) + "…"
		}
	}
	return flat
}

// Truncate cuts s to at most width display cells, ellipsis-marked when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// VisibleWidth measures the display width of s with ANSI sequences removed.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	return runewidth.StringWidth(ansi.Strip(s))
}
