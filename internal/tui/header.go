package tui

import (
	"fmt"
	"strings"

	"github.com/engtools/rebartab/internal/refstore"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	REBARTAB  |  Rebar  Prestress  |  BS 4449 / bar systems
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("REBARTAB")
	sep := headerSepStyle.Render(" │ ")

	tabs := []string{"Rebar", "Prestress"}
	var rendered []string
	for i, name := range tabs {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.activeTab {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}

	content := brand + sep + strings.Join(rendered, "  ") + sep +
		tabInactiveStyle.Render("reinforcement reference")

	return headerBarStyle.Width(m.width).Render(content)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.statusMsg != "" {
		if m.hasLoadWarnings() {
			left = statusWarnStyle.Render(m.statusMsg)
		} else {
			left = statusStyle.Render(m.statusMsg)
		}
	}

	var hints []hint
	if m.inputFocused() {
		hints = []hint{
			{"type", "enter value"},
			{"tab", "next field"},
			{"esc", "back"},
			{"ctrl+c", "quit"},
		}
	} else if m.activeTab == TabRebar {
		hints = []hint{
			{"↑↓", "bar size"},
			{"tab", "focus"},
			{"1/2", "tab"},
			{"r", "reset"},
			{"q", "quit"},
		}
	} else {
		hints = []hint{
			{"↑↓", "navigate"},
			{"enter", "select bar"},
			{"tab", "focus"},
			{"1/2", "tab"},
			{"q", "quit"},
		}
	}
	right := renderHints(hints)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

// hasLoadWarnings reports whether any catalogue table failed or had row
// errors, which tints the status bar.
func (m *Model) hasLoadWarnings() bool {
	for _, st := range []refstore.TableStatus{m.report.Rebar, m.report.Bars, m.report.Anchors} {
		if !st.OK() || len(st.RowErrs) > 0 {
			return true
		}
	}
	return false
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
