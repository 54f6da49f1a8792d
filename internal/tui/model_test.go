package tui

import (
	"testing"

	"github.com/engtools/rebartab/internal/refstore"

	tea "github.com/charmbracelet/bubbletea"
)

// newTestModel builds a model over the embedded catalogue.
func newTestModel(t *testing.T) (Model, *refstore.RefService) {
	t.Helper()
	svc, err := refstore.Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return NewModel(svc), svc
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestDefaultSelection(t *testing.T) {
	m, _ := newTestModel(t)
	if m.bars[m.selectedBar].Name != DefaultBar {
		t.Errorf("expected default bar %s, got %s", DefaultBar, m.bars[m.selectedBar].Name)
	}
}

// TestTableSelectorShareSelection verifies the sync contract: the table
// cursor and the bar selector both derive from the one selectedBar
// field, so moving either moves both.
func TestTableSelectorShareSelection(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.selectedBar

	// Move via the reference table
	m.setFocus(FocusRefTable)
	m = press(m, "down")
	if m.selectedBar != start+1 {
		t.Fatalf("table move: expected %d, got %d", start+1, m.selectedBar)
	}

	// Move back via the selector; the table highlight is the same field
	m.setFocus(FocusSelector)
	m = press(m, "up")
	if m.selectedBar != start {
		t.Fatalf("selector move: expected %d, got %d", start, m.selectedBar)
	}
}

// TestReselectIsIdempotent verifies that assigning the current
// selection again changes nothing — the fixed point of the sync.
func TestReselectIsIdempotent(t *testing.T) {
	m, _ := newTestModel(t)

	m.countInput.SetValue("4")
	m.recalculate()
	before := m.countResult

	m.setSelectedBar(m.selectedBar)
	if m.countResult != before {
		t.Error("re-selecting the same bar must not recompute results")
	}

	// Clamping at the edges is also a no-op once pinned
	m.setSelectedBar(-10)
	first := m.selectedBar
	res := m.countResult
	m.setSelectedBar(-10)
	if m.selectedBar != first || m.countResult != res {
		t.Error("repeated clamped selection must be a no-op")
	}
}

func TestSelectionChangeRecalculates(t *testing.T) {
	m, _ := newTestModel(t)

	m.countInput.SetValue("4")
	m.recalculate()
	if m.countResult == nil {
		t.Fatal("expected count result")
	}
	// Default bar Y12: 113 × 4
	if m.countResult.TotalAreaMM2 != 452 {
		t.Errorf("expected 452 mm², got %v", m.countResult.TotalAreaMM2)
	}

	// Selecting Y16 recomputes with the same count
	m.setSelectedBar(indexOfBar(m.bars, "Y16"))
	if m.countResult.TotalAreaMM2 != 804 {
		t.Errorf("expected 804 mm² after selecting Y16, got %v", m.countResult.TotalAreaMM2)
	}
}

// TestInvalidInputKeepsPriorResult verifies the calculator contract:
// rejected input keeps the last valid result on screen and raises an
// inline message.
func TestInvalidInputKeepsPriorResult(t *testing.T) {
	m, _ := newTestModel(t)

	m.spacingInput.SetValue("200")
	m.recalculate()
	if m.spacingResult == nil {
		t.Fatal("expected spacing result")
	}
	// Y12 @ 200: 113 × 5 = 565
	if m.spacingResult.AreaPerMetre != 565 {
		t.Errorf("expected 565 mm²/m, got %v", m.spacingResult.AreaPerMetre)
	}

	prior := m.spacingResult
	m.spacingInput.SetValue("0")
	m.recalculate()
	if m.spacingResult != prior {
		t.Error("invalid spacing must keep the prior result displayed")
	}
	if m.spacingErr == "" {
		t.Error("invalid spacing must raise an inline message")
	}

	m.countInput.SetValue("abc")
	m.recalculate()
	if m.countErr == "" {
		t.Error("non-numeric count must raise an inline message")
	}

	// A corrected input clears the message
	m.spacingInput.SetValue("150")
	m.recalculate()
	if m.spacingErr != "" {
		t.Errorf("valid input must clear the inline message, got %q", m.spacingErr)
	}
}

func TestEmptyInputClearsResult(t *testing.T) {
	m, _ := newTestModel(t)

	m.countInput.SetValue("4")
	m.recalculate()
	if m.countResult == nil {
		t.Fatal("expected result")
	}

	m.countInput.SetValue("")
	m.recalculate()
	if m.countResult != nil {
		t.Error("empty input must clear the result, not keep it")
	}
	if m.countErr != "" {
		t.Error("empty input is not an error")
	}
}

// TestAnchorPanelStates verifies the three distinct anchor panel
// states: nothing chosen, join hit, and join miss.
func TestAnchorPanelStates(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = TabPrestress
	m.setFocus(FocusPSBars)

	// Nothing chosen yet
	if m.psSelected {
		t.Fatal("no bar should be selected after startup")
	}
	if m.anchors != nil {
		t.Fatal("anchors must be nil before any selection")
	}

	// First cursor press selects the row under the cursor (Macalloy 25mm)
	m = press(m, "down")
	if !m.psSelected {
		t.Fatal("expected a bar to be selected")
	}
	if len(m.anchors) != 3 {
		t.Errorf("expected 3 anchors for Macalloy 25mm, got %d", len(m.anchors))
	}

	// Re-selecting the same bar is a no-op
	before := &m.anchors[0]
	m = press(m, "enter")
	if &m.anchors[0] != before {
		t.Error("re-selecting the same bar must not re-run the join")
	}
}

func TestJoinMissIsExplicitEmptyState(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = TabPrestress

	// Freyssibar 1100 is the third system; its 50mm bar has no anchors
	m.setFocus(FocusSystems)
	m = press(m, "down", "down")
	if m.systems[m.selectedSystem] != "Freyssibar 1100" {
		t.Fatalf("expected Freyssibar 1100, got %s", m.systems[m.selectedSystem])
	}

	m.setFocus(FocusPSBars)
	m = press(m, "down", "down", "down") // select, then move to 50mm
	if m.sysBars[m.psCursor].Designation != "50mm" {
		t.Fatalf("expected 50mm under cursor, got %s", m.sysBars[m.psCursor].Designation)
	}
	if m.anchors == nil {
		t.Fatal("join miss must yield an empty slice, not nil — nil means not selected")
	}
	if len(m.anchors) != 0 {
		t.Errorf("expected no anchors, got %d", len(m.anchors))
	}
}

// TestSystemChangeResetsBarSelection verifies that changing the system
// filter drops the dependent selection back to "nothing chosen".
func TestSystemChangeResetsBarSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m.activeTab = TabPrestress
	m.setFocus(FocusPSBars)
	m = press(m, "down")
	if !m.psSelected {
		t.Fatal("expected selection")
	}

	m.setFocus(FocusSystems)
	m = press(m, "down")
	if m.psSelected {
		t.Error("system change must clear the bar selection")
	}
	if m.anchors != nil {
		t.Error("system change must clear the anchor join")
	}
	if len(m.sysBars) == 0 {
		t.Error("new system's bars should be loaded")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(FocusRefTable)
	m = press(m, "down", "down")
	m.countInput.SetValue("9")
	m.recalculate()

	m = press(m, "r")
	if m.bars[m.selectedBar].Name != DefaultBar {
		t.Errorf("reset should restore %s, got %s", DefaultBar, m.bars[m.selectedBar].Name)
	}
	if m.countInput.Value() != "" || m.countResult != nil {
		t.Error("reset should clear inputs and results")
	}
}

// TestQuitKeys verifies that q quits outside inputs and types inside.
func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(FocusRefTable)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q outside an input should quit")
	}

	m.setFocus(FocusCount)
	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if m.countInput.Value() != "q" {
		t.Errorf("q inside an input should type, got %q", m.countInput.Value())
	}
	// The typed q is non-numeric: inline error, no crash
	if m.countErr == "" {
		t.Error("expected inline validation message")
	}
}
