package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette — GitHub Dark aesthetic
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.
// Designed for readability in dark terminals (iTerm2, Windows
// Terminal, Ghostty, Alacritty).

var (
	// Base
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true).
			Underline(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)
)

// Panel chrome
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	panelTitleDimStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Bold(true)
)

// Tables
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	rowSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	rowDimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// Calculator pane
var (
	sectionLabelStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	selectorStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	selectorArrowStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted)

	selectorFocusArrowStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	resultStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	resultEmptyStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted)

	inlineErrStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Anchor types
var (
	anchorLiveStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	anchorDeadStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	anchorCouplerStyle = lipgloss.NewStyle().
				Foreground(colorPurple)
)

// Banners and empty states
var (
	bannerWarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "─",
			Bottom: "─",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorYellow)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(1, 2)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorBgSurface).
			Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)
