package tui

import (
	"fmt"
	"strings"

	"github.com/engtools/rebartab/pkg/unitfmt"

	"github.com/charmbracelet/lipgloss"
)

// renderRebarTab assembles the two-pane rebar view: the reference table
// on the left, the calculator on the right.
func renderRebarTab(m *Model, totalHeight int) string {
	// Responsive: collapse to single pane on narrow terminals
	if m.width < 64 {
		if m.focus == FocusRefTable {
			return renderRefTablePanel(m, m.width, totalHeight)
		}
		return renderCalcPanel(m, m.width, totalHeight)
	}

	leftWidth := m.width * 40 / 100
	rightWidth := m.width - leftWidth

	table := renderRefTablePanel(m, leftWidth, totalHeight)
	calcPane := renderCalcPanel(m, rightWidth, totalHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, table, calcPane)
}

// renderRefTable renders the bar reference table. The highlighted row
// always mirrors the calculator's bar selector: both derive from the
// one selectedBar field.
func renderRefTable(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.focus == FocusRefTable {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Reference")

	if !m.report.Rebar.OK() {
		return title + "\n\n" +
			bannerWarnStyle.Width(width).Render(
				"Bar table unavailable:\n"+m.report.Rebar.Err.Error())
	}
	if len(m.bars) == 0 {
		return title + "\n\n" + emptyStateStyle.Render("No bar sizes loaded.")
	}

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")
	lines = append(lines, tableHeaderStyle.Render(
		fmt.Sprintf("%-5s %7s %10s %9s", "Bar", "Ø mm", "Area mm²", "kg/m")))

	for i, b := range m.bars {
		content := fmt.Sprintf("%-5s %7s %10.1f %9.3f",
			b.Name, unitfmt.Bare(b.DiameterMM), b.AreaMM2, b.WeightKgM)
		if i == m.selectedBar {
			lines = append(lines, rowSelectedStyle.Width(width).Render(content))
		} else {
			lines = append(lines, rowStyle.Render(content))
		}
	}

	if len(m.report.Rebar.RowErrs) > 0 {
		lines = append(lines, "")
		lines = append(lines, inlineErrStyle.Render(
			fmt.Sprintf("%d row(s) skipped while loading", len(m.report.Rebar.RowErrs))))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderRefTablePanel wraps the reference table in a styled panel.
func renderRefTablePanel(m *Model, width, height int) string {
	content := renderRefTable(m, width-4, height-2)

	style := panelStyle
	if m.focus == FocusRefTable {
		style = panelActiveStyle
	}
	return style.Width(width).Height(height).Render(content)
}

// renderCalc renders the calculator pane: bar selector, count section,
// spacing section.
func renderCalc(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.focus != FocusRefTable {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Calculator")

	if len(m.bars) == 0 {
		return title + "\n\n" +
			emptyStateStyle.Render("No bar data to calculate with.")
	}

	bar := m.bars[m.selectedBar]

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")

	// ── Bar selector ──

	lines = append(lines, fieldLabelStyle.Render("Bar size"))
	arrow := selectorArrowStyle
	if m.focus == FocusSelector {
		arrow = selectorFocusArrowStyle
	}
	selector := arrow.Render("◂ ") +
		selectorStyle.Render(fmt.Sprintf("%-4s", bar.Name)) +
		arrow.Render(" ▸") +
		rowDimStyle.Render(fmt.Sprintf("  %s  %s",
			unitfmt.Area(bar.AreaMM2), unitfmt.Weight(bar.WeightKgM)))
	lines = append(lines, selector)

	// ── Count ──

	lines = append(lines, "")
	lines = append(lines, sectionLabelStyle.Render("COUNT"))
	lines = append(lines, fieldLabelStyle.Render("Number of bars"))
	lines = append(lines, m.countInput.View())
	if m.countResult != nil {
		res := m.countResult
		lines = append(lines, resultStyle.Render(
			fmt.Sprintf("%d × %s  =  %s  (%s)",
				res.Count, bar.Name,
				unitfmt.Area(res.TotalAreaMM2), unitfmt.Weight(res.TotalWeightKgM))))
	} else {
		lines = append(lines, resultEmptyStyle.Render("—"))
	}
	if m.countErr != "" {
		lines = append(lines, inlineErrStyle.Render(m.countErr))
	}

	// ── Spacing ──

	lines = append(lines, "")
	lines = append(lines, sectionLabelStyle.Render("SPACING"))
	lines = append(lines, fieldLabelStyle.Render("Centre-to-centre spacing (mm)"))
	lines = append(lines, m.spacingInput.View())
	if m.spacingResult != nil {
		res := m.spacingResult
		lines = append(lines, resultStyle.Render(
			fmt.Sprintf("%s @ %s c/c  =  %s  (%s)",
				bar.Name, unitfmt.Millimetres(res.SpacingMM),
				unitfmt.AreaPerMetre(res.AreaPerMetre),
				unitfmt.WeightPerArea(res.WeightPerMetre2))))
	} else {
		lines = append(lines, resultEmptyStyle.Render("—"))
	}
	if m.spacingErr != "" {
		lines = append(lines, inlineErrStyle.Render(m.spacingErr))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderCalcPanel wraps the calculator in a styled panel.
func renderCalcPanel(m *Model, width, height int) string {
	content := renderCalc(m, width-4, height-2)

	style := panelStyle
	if m.focus != FocusRefTable && m.activeTab == TabRebar {
		style = panelActiveStyle
	}
	return style.Width(width).Height(height).Render(content)
}
