package tui

import (
	"fmt"
	"strings"

	"github.com/engtools/rebartab/internal/calc"
	"github.com/engtools/rebartab/internal/refstore"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultBar is the bar size selected at startup and after a reset.
const DefaultBar = "Y12"

// ────────────────────────────────────────────────────────────
// Tabs and focus
// ────────────────────────────────────────────────────────────

// Tab identifies the active top-level tab.
type Tab int

const (
	TabRebar Tab = iota
	TabPrestress
)

// Focus represents which widget currently has keyboard focus.
type Focus int

const (
	// Rebar tab
	FocusRefTable Focus = iota
	FocusSelector
	FocusCount
	FocusSpacing
	// Prestress tab
	FocusSystems
	FocusPSBars
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the rebartab TUI.
//
// The catalogue is loaded once, synchronously, before the program
// starts; the model only ever reads from the store. All selection
// state lives here and is mutated exclusively by key handlers in
// Update — View is a pure function of the model, so a render can
// never feed back into the selection and no update loop is possible.
type Model struct {
	store refstore.Store

	// Catalogue data
	bars    []refstore.BarSpec
	systems []string
	sysBars []refstore.PrestressBar
	anchors []refstore.PrestressAnchor
	report  refstore.LoadReport

	// Selection state. selectedBar is the single source of truth for
	// the rebar tab: the reference table highlight and the bar-size
	// selector both render from it.
	activeTab      Tab
	focus          Focus
	selectedBar    int
	selectedSystem int
	psCursor       int
	psSelected     bool   // a bar has been chosen since the last system change
	psJoined       string // designation the anchor panel currently reflects

	// Calculator
	countInput    textinput.Model
	spacingInput  textinput.Model
	countResult   *calc.CountResult
	spacingResult *calc.SpacingResult
	countErr      string
	spacingErr    string

	// Status
	width     int
	height    int
	statusMsg string
	err       error
}

// NewModel creates the TUI model backed by the given store. The store
// has already loaded the catalogue, so everything here is in-memory
// queries; any query failure is carried on the model and shown in the
// status bar rather than aborting startup.
func NewModel(store refstore.Store) Model {
	m := Model{
		store:  store,
		report: store.Report(),
	}

	m.countInput = newNumericInput("e.g. 5", 6)
	m.spacingInput = newNumericInput("e.g. 150", 8)

	if bars, err := store.Bars(); err != nil {
		m.err = err
	} else {
		m.bars = bars
	}
	if systems, err := store.Systems(); err != nil {
		m.err = err
	} else {
		m.systems = systems
	}

	m.selectedBar = indexOfBar(m.bars, DefaultBar)
	m.refreshSystemBars()
	m.statusMsg = m.loadSummary()

	return m
}

func newNumericInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 10
	in.Width = width
	in.Prompt = "> "
	return in
}

// loadSummary builds the startup status line, surfacing catalogue
// warnings without blocking the rest of the application.
func (m Model) loadSummary() string {
	var warnings int
	for _, st := range []refstore.TableStatus{m.report.Rebar, m.report.Bars, m.report.Anchors} {
		if !st.OK() {
			warnings++
		}
		warnings += len(st.RowErrs)
	}
	if warnings > 0 {
		return fmt.Sprintf("%d bar sizes  %d systems  %d catalogue warnings",
			len(m.bars), len(m.systems), warnings)
	}
	return fmt.Sprintf("%d bar sizes  %d systems", len(m.bars), len(m.systems))
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	// Data is already loaded; only the input cursor needs a command.
	return textinput.Blink
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (cursor blink, etc.) goes to the inputs.
	return m.updateInputs(msg)
}

// updateInputs forwards a message to both text inputs.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.countInput, cmds[0] = m.countInput.Update(msg)
	m.spacingInput, cmds[1] = m.spacingInput.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

// inputFocused reports whether keyboard focus is on a text input, in
// which case printable keys belong to the input, not the key map.
func (m Model) inputFocused() bool {
	return m.focus == FocusCount || m.focus == FocusSpacing
}

// handleKey routes keyboard input. Key handlers are the only writers of
// selection state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Global ──

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.setFocus(m.nextFocus(1))
		return m, nil

	case "shift+tab":
		m.setFocus(m.nextFocus(-1))
		return m, nil

	case "esc":
		if m.activeTab == TabRebar {
			m.setFocus(FocusRefTable)
		} else {
			m.setFocus(FocusSystems)
		}
		return m, nil
	}

	// Printable keys act as commands only while no input is focused.
	if !m.inputFocused() {
		switch key {
		case "q":
			return m, tea.Quit
		case "r":
			m.reset()
			return m, nil
		case "1":
			m.activeTab = TabRebar
			m.setFocus(FocusRefTable)
			return m, nil
		case "2":
			m.activeTab = TabPrestress
			m.setFocus(FocusSystems)
			return m, nil
		}
	}

	// ── Widget-specific ──

	switch m.focus {
	case FocusRefTable, FocusSelector:
		switch key {
		case "j", "down":
			m.setSelectedBar(m.selectedBar + 1)
		case "k", "up":
			m.setSelectedBar(m.selectedBar - 1)
		case "h", "left":
			if m.focus == FocusSelector {
				m.setSelectedBar(m.selectedBar - 1)
			}
		case "l", "right":
			if m.focus == FocusSelector {
				m.setSelectedBar(m.selectedBar + 1)
			}
		case "enter":
			m.setFocus(FocusCount)
		}
		return m, nil

	case FocusCount, FocusSpacing:
		return m.handleInputKey(msg)

	case FocusSystems:
		switch key {
		case "j", "down":
			m.setSelectedSystem(m.selectedSystem + 1)
		case "k", "up":
			m.setSelectedSystem(m.selectedSystem - 1)
		case "enter":
			m.setFocus(FocusPSBars)
		}
		return m, nil

	case FocusPSBars:
		switch key {
		case "j", "down":
			m.movePSCursor(1)
		case "k", "up":
			m.movePSCursor(-1)
		case "enter":
			m.selectPSBar()
		}
		return m, nil
	}

	return m, nil
}

// handleInputKey forwards a key to the focused text input and
// recomputes the calculator.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == FocusCount {
		m.countInput, cmd = m.countInput.Update(msg)
	} else {
		m.spacingInput, cmd = m.spacingInput.Update(msg)
	}
	m.recalculate()
	return m, cmd
}

// ────────────────────────────────────────────────────────────
// Selection state transitions
// ────────────────────────────────────────────────────────────

// setFocus moves keyboard focus, keeping the text input focus flags in
// sync so exactly the focused input shows a cursor.
func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.countInput.Blur()
	m.spacingInput.Blur()
	switch f {
	case FocusCount:
		m.countInput.Focus()
	case FocusSpacing:
		m.spacingInput.Focus()
	}
}

// nextFocus cycles focus within the active tab.
func (m Model) nextFocus(dir int) Focus {
	var ring []Focus
	if m.activeTab == TabRebar {
		ring = []Focus{FocusRefTable, FocusSelector, FocusCount, FocusSpacing}
	} else {
		ring = []Focus{FocusSystems, FocusPSBars}
	}
	cur := 0
	for i, f := range ring {
		if f == m.focus {
			cur = i
			break
		}
	}
	return ring[(cur+dir+len(ring))%len(ring)]
}

// setSelectedBar is the single idempotent assignment both the table and
// the selector funnel through. Re-selecting the current bar changes
// nothing, so table→selector→table settles in one step.
func (m *Model) setSelectedBar(i int) {
	if len(m.bars) == 0 {
		return
	}
	i = clamp(i, 0, len(m.bars)-1)
	if i == m.selectedBar {
		return
	}
	m.selectedBar = i
	m.recalculate()
}

// setSelectedSystem changes the system filter and clears the dependent
// bar selection: the anchor panel returns to its "nothing chosen yet"
// state until a bar is picked in the new system.
func (m *Model) setSelectedSystem(i int) {
	if len(m.systems) == 0 {
		return
	}
	i = clamp(i, 0, len(m.systems)-1)
	if i == m.selectedSystem {
		return
	}
	m.selectedSystem = i
	m.refreshSystemBars()
}

// refreshSystemBars filters the prestress bar list to the selected
// system and resets the join state.
func (m *Model) refreshSystemBars() {
	m.psCursor = 0
	m.psSelected = false
	m.psJoined = ""
	m.anchors = nil
	m.sysBars = nil
	if len(m.systems) == 0 {
		return
	}
	bars, err := m.store.SystemBars(m.systems[m.selectedSystem])
	if err != nil {
		m.err = err
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return
	}
	m.sysBars = bars
}

// movePSCursor moves the bar cursor within the filtered set. The first
// press selects the row under the cursor; afterwards it moves.
func (m *Model) movePSCursor(dir int) {
	if len(m.sysBars) == 0 {
		return
	}
	if m.psSelected {
		m.psCursor = clamp(m.psCursor+dir, 0, len(m.sysBars)-1)
	}
	m.selectPSBar()
}

// selectPSBar marks the bar under the cursor as selected and runs the
// anchor join for its (system, designation) key.
func (m *Model) selectPSBar() {
	if len(m.sysBars) == 0 {
		return
	}
	bar := m.sysBars[m.psCursor]
	if m.psSelected && m.psJoined == bar.Designation {
		return // re-selecting the same bar is a no-op
	}
	anchors, err := m.store.Anchors(bar.System, bar.Designation)
	if err != nil {
		m.err = err
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return
	}
	m.anchors = anchors
	m.psSelected = true
	m.psJoined = bar.Designation
}

// reset restores the startup defaults: inputs cleared, default bar
// selected, prestress selection dropped.
func (m *Model) reset() {
	m.countInput.SetValue("")
	m.spacingInput.SetValue("")
	m.countResult = nil
	m.spacingResult = nil
	m.countErr = ""
	m.spacingErr = ""
	m.selectedBar = indexOfBar(m.bars, DefaultBar)
	m.selectedSystem = 0
	m.refreshSystemBars()
	m.statusMsg = m.loadSummary()
}

// ────────────────────────────────────────────────────────────
// Calculation
// ────────────────────────────────────────────────────────────

// recalculate derives both calculator results from the selected bar and
// the raw input text. An invalid input keeps the prior result on screen
// and sets an inline message; an empty input clears the result.
func (m *Model) recalculate() {
	if len(m.bars) == 0 {
		return
	}
	spec := m.bars[m.selectedBar]
	bar := calc.Bar{AreaMM2: spec.AreaMM2, WeightKgM: spec.WeightKgM}

	switch raw := m.countInput.Value(); {
	case strings.TrimSpace(raw) == "":
		m.countResult = nil
		m.countErr = ""
	default:
		if n, err := calc.ParseCount(raw); err != nil {
			m.countErr = "enter a whole number of bars, 1 or more"
		} else {
			res, _ := calc.ByCount(bar, n)
			m.countResult = &res
			m.countErr = ""
		}
	}

	switch raw := m.spacingInput.Value(); {
	case strings.TrimSpace(raw) == "":
		m.spacingResult = nil
		m.spacingErr = ""
	default:
		if s, err := calc.ParseSpacing(raw); err != nil {
			m.spacingErr = "enter a spacing in mm, greater than zero"
		} else {
			res, _ := calc.BySpacing(bar, s)
			m.spacingResult = &res
			m.spacingErr = ""
		}
	}
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - 2 // header + footer

	var body string
	if m.activeTab == TabRebar {
		body = renderRebarTab(&m, bodyHeight)
	} else {
		body = renderPrestressTab(&m, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// indexOfBar returns the index of the named bar, or 0 if absent.
func indexOfBar(bars []refstore.BarSpec, name string) int {
	for i, b := range bars {
		if b.Name == name {
			return i
		}
	}
	return 0
}
