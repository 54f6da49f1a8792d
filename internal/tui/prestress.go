package tui

import (
	"fmt"
	"strings"

	"github.com/engtools/rebartab/pkg/unitfmt"

	"github.com/charmbracelet/lipgloss"
)

// renderPrestressTab assembles the prestress join view: systems and the
// filtered bar list on the left, the anchor panel on the right.
func renderPrestressTab(m *Model, totalHeight int) string {
	if m.width < 72 {
		if m.focus == FocusPSBars && m.psSelected {
			return renderAnchorPanel(m, m.width, totalHeight)
		}
		return renderSystemPanel(m, m.width, totalHeight)
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth

	left := renderSystemPanel(m, leftWidth, totalHeight)
	right := renderAnchorPanel(m, rightWidth, totalHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderSystems renders the system selector and the bars of the
// selected system.
func renderSystems(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.focus == FocusSystems || m.focus == FocusPSBars {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Bar Systems")

	if !m.report.Bars.OK() {
		return title + "\n\n" +
			bannerWarnStyle.Width(width).Render(
				"Prestress catalogue unavailable:\n"+m.report.Bars.Err.Error())
	}
	if len(m.systems) == 0 {
		return title + "\n\n" +
			emptyStateStyle.Render("No prestressing systems in the catalogue.")
	}

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")

	// ── System selector ──

	for i, sys := range m.systems {
		content := truncate(sys, width-4)
		if i == m.selectedSystem {
			marker := "▸ "
			if m.focus == FocusSystems {
				lines = append(lines, rowSelectedStyle.Width(width).Render(marker+content))
			} else {
				lines = append(lines, selectorStyle.Render(marker+content))
			}
		} else {
			lines = append(lines, rowDimStyle.Render("  "+content))
		}
	}

	// ── Bars of the selected system ──

	lines = append(lines, "")
	if len(m.sysBars) == 0 {
		lines = append(lines, emptyStateStyle.Render("No bars listed for this system."))
	} else {
		lines = append(lines, tableHeaderStyle.Render(
			fmt.Sprintf("%-8s %6s %9s %8s %8s", "Bar", "Ø mm", "Area mm²", "Fbrk kN", "F0.1 kN")))
		for i, b := range m.sysBars {
			content := fmt.Sprintf("%-8s %6s %9.0f %8s %8s",
				b.Designation, unitfmt.Bare(b.DiameterMM), b.AreaMM2,
				optLoad(b.BreakingLoadKN), optLoad(b.ProofLoadKN))
			switch {
			case m.psSelected && i == m.psCursor:
				lines = append(lines, rowSelectedStyle.Width(width).Render(content))
			case !m.psSelected && i == m.psCursor && m.focus == FocusPSBars:
				lines = append(lines, rowStyle.Bold(true).Render(content))
			default:
				lines = append(lines, rowStyle.Render(content))
			}
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderSystemPanel wraps the system/bar list in a styled panel.
func renderSystemPanel(m *Model, width, height int) string {
	content := renderSystems(m, width-4, height-2)

	style := panelStyle
	if m.focus == FocusSystems || m.focus == FocusPSBars {
		style = panelActiveStyle
	}
	return style.Width(width).Height(height).Render(content)
}

// renderAnchors renders the anchor join result. Three states are kept
// visually distinct: catalogue missing, no bar chosen yet, and a bar
// chosen that genuinely has no anchor rows.
func renderAnchors(m *Model, width, height int) string {
	title := panelTitleDimStyle.Render("Anchorages")

	if !m.report.Anchors.OK() {
		return title + "\n\n" +
			bannerWarnStyle.Width(width).Render(
				"Anchorage catalogue unavailable:\n"+m.report.Anchors.Err.Error())
	}

	if !m.psSelected {
		return title + "\n\n" +
			emptyStateStyle.Render("Select a bar to view its anchorage details.")
	}

	bar := m.sysBars[m.psCursor]
	heading := fmt.Sprintf("%s  %s", bar.System, bar.Designation)

	if len(m.anchors) == 0 {
		return title + "\n\n" +
			selectorStyle.Render(truncate(heading, width)) + "\n\n" +
			emptyStateStyle.Render("No anchorage data published for this bar.")
	}

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")
	lines = append(lines, selectorStyle.Render(truncate(heading, width)))
	lines = append(lines, rowDimStyle.Render(fmt.Sprintf("%s  %s  %s",
		unitfmt.Strength(bar.UltStrengthMPa),
		unitfmt.Area(bar.AreaMM2),
		unitfmt.Weight(bar.WeightKgM))))
	lines = append(lines, "")

	lines = append(lines, tableHeaderStyle.Render(
		fmt.Sprintf("%-9s %11s %8s %8s", "Type", "Plate mm", "Spc mm", "Edge mm")))
	for _, a := range m.anchors {
		plate := fmt.Sprintf("%s×%s", unitfmt.Bare(a.PlateWidthMM), unitfmt.Bare(a.PlateDepthMM))
		line := fmt.Sprintf("%-9s %11s %8s %8s",
			a.AnchorType, plate, unitfmt.Bare(a.MinSpacingMM), unitfmt.Bare(a.MinEdgeDistMM))
		lines = append(lines, anchorStyle(a.AnchorType).Render(line))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderAnchorPanel wraps the anchor table in a styled panel.
func renderAnchorPanel(m *Model, width, height int) string {
	content := renderAnchors(m, width-4, height-2)
	return panelStyle.Width(width).Height(height).Render(content)
}
