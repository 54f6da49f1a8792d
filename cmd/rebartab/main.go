// rebartab — reinforcement reference tables and bar calculators for
// structural engineers, in the terminal.
//
// Usage:
//
//	rebartab [flags]
//
// Flags:
//
//	--data    Directory containing the catalogue CSV files
//	          (default: embedded catalogue; env: REBARTAB_DATA_DIR)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/engtools/rebartab/internal/refstore"
	"github.com/engtools/rebartab/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// A .env next to the binary may set REBARTAB_DATA_DIR; absence is fine.
	_ = godotenv.Load()

	dataDir := flag.String("data", os.Getenv("REBARTAB_DATA_DIR"),
		"Directory containing the catalogue CSV files (default: embedded catalogue)")
	flag.Parse()

	// Catalogue problems are not fatal: the store records them per
	// table and the TUI degrades the affected panel to a warning.
	store, err := refstore.Open(*dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize catalogue store: %v", err)
	}
	defer store.Close()

	model := tui.NewModel(store)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
