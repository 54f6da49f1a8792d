// Package tui implements the rebartab terminal user interface.
//
// Built with Charmbracelet's BubbleTea, Bubbles, and Lipgloss
// libraries.
//
// Component architecture:
//
//	model.go     — root model, selection state, Init/Update
//	theme.go     — centralized color + style definitions
//	header.go    — top bar with tabs, footer with keyboard hints
//	rebar.go     — reference table + calculator panes
//	prestress.go — system/bar filter and anchor join panes
//	helpers.go   — anchor styling, truncation, clamping
//
// All selection state is written only by key handlers in Update;
// renderers read it and never write back, so the table highlight and
// the bar selector stay in sync without update loops.
package tui
