package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────────────────────────────────
// Anchor type rendering
// ────────────────────────────────────────────────────────────

// anchorStyle returns the style for an anchor type.
func anchorStyle(anchorType string) lipgloss.Style {
	switch anchorType {
	case "live":
		return anchorLiveStyle
	case "dead":
		return anchorDeadStyle
	case "coupler":
		return anchorCouplerStyle
	default:
		return rowStyle
	}
}

// ────────────────────────────────────────────────────────────
// Value helpers
// ────────────────────────────────────────────────────────────

// optLoad formats an optional load figure for a table column whose
// header already names the unit; a catalogue gap renders as a dash
// rather than a zero.
func optLoad(kn *float64) string {
	if kn == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f", *kn)
}

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
