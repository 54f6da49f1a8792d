// Package refstore provides the reference catalogue layer for rebartab.
//
// It loads the rebar and prestressing tables from CSV into an in-memory
// SQLite database at startup and serves every lookup, filter, and join
// from there. The data is read-only for the process lifetime; the only
// way to refresh it is to reopen the store. The RefService struct is
// the primary entry point for all catalogue operations.
package refstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

//go:embed data/*.csv
var defaultDataFS embed.FS

// Catalogue file names, looked up in the data directory override or the
// embedded defaults.
const (
	RebarFile   = "rebar.csv"
	BarsFile    = "prestress_bars.csv"
	AnchorsFile = "prestress_anchors.csv"
)

// Store defines the interface for catalogue lookups. This abstraction
// allows for mocking in tests and potential future backends beyond the
// in-memory SQLite database.
type Store interface {
	// Bars returns every rebar spec in source file order.
	Bars() ([]BarSpec, error)
	// BarByName returns the rebar spec with the given name, or nil if
	// the name is unknown.
	BarByName(name string) (*BarSpec, error)

	// Systems returns the distinct prestressing system names in
	// first-seen order.
	Systems() ([]string, error)
	// SystemBars returns every prestressing bar of one system,
	// preserving file order.
	SystemBars(system string) ([]PrestressBar, error)
	// Anchors returns the anchor rows joined on (system, designation).
	// A bar with no matching anchors yields an empty, non-nil slice.
	Anchors(system, designation string) ([]PrestressAnchor, error)

	// Report describes how each catalogue table loaded, including
	// per-table failures the UI degrades on and per-row parse errors.
	Report() LoadReport

	// Close releases the underlying database.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// BarSpec is one standard reinforcement bar size.
type BarSpec struct {
	Name       string  `json:"name"`
	DiameterMM float64 `json:"diameter_mm"`
	AreaMM2    float64 `json:"area_mm2"`
	WeightKgM  float64 `json:"weight_kg_m"`
}

// PrestressBar is one bar size within a prestressing system. The
// (System, Designation) pair is the catalogue key. Breaking and proof
// loads are optional: not every manufacturer publishes both.
type PrestressBar struct {
	System         string   `json:"system"`
	Designation    string   `json:"designation"`
	DiameterMM     float64  `json:"diameter_mm"`
	AreaMM2        float64  `json:"area_mm2"`
	UltStrengthMPa float64  `json:"ult_strength_mpa"`
	BreakingLoadKN *float64 `json:"breaking_load_kn,omitempty"`
	ProofLoadKN    *float64 `json:"proof_load_kn,omitempty"`
	WeightKgM      float64  `json:"weight_kg_m"`
}

// PrestressAnchor is one anchorage component for a prestressing bar.
// AnchorType is "live" (stressing end), "dead" (fixed end), or
// "coupler" (splice connector).
type PrestressAnchor struct {
	System        string  `json:"system"`
	Designation   string  `json:"designation"`
	AnchorType    string  `json:"anchor_type"`
	PlateWidthMM  float64 `json:"plate_width_mm"`
	PlateDepthMM  float64 `json:"plate_depth_mm"`
	MinSpacingMM  float64 `json:"min_spacing_mm"`
	MinEdgeDistMM float64 `json:"min_edge_dist_mm"`
}

// ============================================================
// Load reporting
// ============================================================

// LoadError describes a catalogue table that could not be loaded at
// all: missing file, unreadable file, or a header/data problem. It is
// surfaced as a warning banner in the affected panel, never a crash.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// TableStatus describes the outcome of loading one catalogue table.
type TableStatus struct {
	Path    string
	Rows    int
	RowErrs []RowError
	Err     *LoadError // nil when the table is usable
}

// OK reports whether the table loaded well enough to serve queries.
func (s TableStatus) OK() bool { return s.Err == nil }

// LoadReport collects the status of all three catalogue tables so the
// UI can degrade per panel: a failed prestress load must not take the
// rebar tab down with it.
type LoadReport struct {
	Rebar   TableStatus
	Bars    TableStatus
	Anchors TableStatus
}

// ============================================================
// RefService Implementation
// ============================================================

// RefService implements the Store interface over an in-memory SQLite
// database. All mutation happens inside Open; afterwards the service
// only reads, so no locking is needed beyond SQLite's own.
type RefService struct {
	db     *sql.DB
	report LoadReport

	// Prepared statements for the hot lookups
	stmtBarByName  *sql.Stmt
	stmtSystemBars *sql.Stmt
	stmtAnchors    *sql.Stmt
}

// Open creates the in-memory database, initializes the schema, and
// loads the three catalogue tables. If dir is non-empty the CSV files
// are read from it; otherwise the embedded defaults are used. A table
// that fails to load is recorded in the report and left empty — Open
// only returns an error for unrecoverable conditions such as SQLite
// failing to initialize.
func Open(dir string) (*RefService, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// A single connection keeps every statement on the same in-memory
	// database instance.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &RefService{db: db}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	svc.loadAll(dir)

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

// initSchema reads the embedded schema.sql and executes it to create
// all tables and indexes.
func (s *RefService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// prepareStatements creates prepared statements for the lookups the UI
// runs on every keystroke.
func (s *RefService) prepareStatements() error {
	var err error

	s.stmtBarByName, err = s.db.Prepare(`
		SELECT name, diameter_mm, area_mm2, weight_kg_m
		FROM rebar WHERE name = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing BarByName: %w", err)
	}

	s.stmtSystemBars, err = s.db.Prepare(`
		SELECT system, designation, diameter_mm, area_mm2, ult_strength_mpa,
			breaking_load_kn, proof_load_kn, weight_kg_m
		FROM prestress_bars WHERE system = ? ORDER BY seq
	`)
	if err != nil {
		return fmt.Errorf("preparing SystemBars: %w", err)
	}

	s.stmtAnchors, err = s.db.Prepare(`
		SELECT system, designation, anchor_type, plate_width_mm, plate_depth_mm,
			min_spacing_mm, min_edge_dist_mm
		FROM prestress_anchors WHERE system = ? AND designation = ? ORDER BY seq
	`)
	if err != nil {
		return fmt.Errorf("preparing Anchors: %w", err)
	}

	return nil
}

// openSource opens one catalogue file: from the data directory when an
// override is given, from the embedded defaults otherwise.
func openSource(dir, name string) (io.ReadCloser, string, error) {
	if dir == "" {
		f, err := defaultDataFS.Open("data/" + name)
		return f, "embedded:" + name, err
	}
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	return f, path, err
}

// loadAll loads the three catalogue tables, recording per-table status.
// Each table loads independently so one failure degrades one panel.
func (s *RefService) loadAll(dir string) {
	s.report.Rebar = s.loadTable(dir, RebarFile, s.insertBarSpecs)
	s.report.Bars = s.loadTable(dir, BarsFile, s.insertPrestressBars)
	s.report.Anchors = s.loadTable(dir, AnchorsFile, s.insertPrestressAnchors)
}

// loadTable parses one CSV source and hands the table to the insert
// function. All failure modes end up in the returned TableStatus.
func (s *RefService) loadTable(dir, name string, insert func(*table) (int, error)) TableStatus {
	src, path, err := openSource(dir, name)
	status := TableStatus{Path: path}
	if err != nil {
		status.Err = &LoadError{Path: path, Err: err}
		return status
	}
	defer src.Close()

	t, err := readTable(src)
	if err != nil {
		status.Err = &LoadError{Path: path, Err: err}
		return status
	}

	rows, err := insert(t)
	if err != nil {
		status.Err = &LoadError{Path: path, Err: err}
		return status
	}

	status.Rows = rows
	status.RowErrs = t.rowErrs
	if rows == 0 {
		status.Err = &LoadError{Path: path, Err: ErrNoDataRows}
	}
	return status
}

// insertBarSpecs decodes and inserts the rebar table in one transaction.
func (s *RefService) insertBarSpecs(t *table) (int, error) {
	specs, err := decodeBarSpecs(t)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebar transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.Prepare(`
		INSERT INTO rebar (name, diameter_mm, area_mm2, weight_kg_m)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing rebar insert: %w", err)
	}
	defer stmt.Close()

	for _, spec := range specs {
		if _, err := stmt.Exec(spec.Name, spec.DiameterMM, spec.AreaMM2, spec.WeightKgM); err != nil {
			return 0, fmt.Errorf("inserting rebar %s: %w", spec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebar transaction: %w", err)
	}
	return len(specs), nil
}

// insertPrestressBars decodes and inserts the prestressing bar table.
func (s *RefService) insertPrestressBars(t *table) (int, error) {
	bars, err := decodePrestressBars(t)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning prestress bar transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO prestress_bars (system, designation, diameter_mm, area_mm2,
			ult_strength_mpa, breaking_load_kn, proof_load_kn, weight_kg_m)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing prestress bar insert: %w", err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		_, err := stmt.Exec(bar.System, bar.Designation, bar.DiameterMM,
			bar.AreaMM2, bar.UltStrengthMPa, bar.BreakingLoadKN,
			bar.ProofLoadKN, bar.WeightKgM)
		if err != nil {
			return 0, fmt.Errorf("inserting prestress bar %s %s: %w", bar.System, bar.Designation, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prestress bar transaction: %w", err)
	}
	return len(bars), nil
}

// insertPrestressAnchors decodes and inserts the anchor table. No
// referential check against prestress_bars happens here: an orphan
// anchor row is simply unreachable through the join.
func (s *RefService) insertPrestressAnchors(t *table) (int, error) {
	anchors, err := decodePrestressAnchors(t)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning anchor transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO prestress_anchors (system, designation, anchor_type,
			plate_width_mm, plate_depth_mm, min_spacing_mm, min_edge_dist_mm)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing anchor insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range anchors {
		_, err := stmt.Exec(a.System, a.Designation, a.AnchorType,
			a.PlateWidthMM, a.PlateDepthMM, a.MinSpacingMM, a.MinEdgeDistMM)
		if err != nil {
			return 0, fmt.Errorf("inserting anchor %s %s %s: %w", a.System, a.Designation, a.AnchorType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing anchor transaction: %w", err)
	}
	return len(anchors), nil
}

// ============================================================
// Queries
// ============================================================

// Bars returns every rebar spec in source file order.
func (s *RefService) Bars() ([]BarSpec, error) {
	rows, err := s.db.Query(`
		SELECT name, diameter_mm, area_mm2, weight_kg_m
		FROM rebar ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying rebar: %w", err)
	}
	defer rows.Close()

	var specs []BarSpec
	for rows.Next() {
		var b BarSpec
		if err := rows.Scan(&b.Name, &b.DiameterMM, &b.AreaMM2, &b.WeightKgM); err != nil {
			return nil, fmt.Errorf("scanning rebar row: %w", err)
		}
		specs = append(specs, b)
	}
	return specs, rows.Err()
}

// BarByName returns the rebar spec with the given name, or nil if no
// such bar exists.
func (s *RefService) BarByName(name string) (*BarSpec, error) {
	var b BarSpec
	err := s.stmtBarByName.QueryRow(name).Scan(&b.Name, &b.DiameterMM, &b.AreaMM2, &b.WeightKgM)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying bar %s: %w", name, err)
	}
	return &b, nil
}

// Systems returns the distinct prestressing system names in first-seen
// order.
func (s *RefService) Systems() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT system FROM prestress_bars GROUP BY system ORDER BY MIN(seq)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying systems: %w", err)
	}
	defer rows.Close()

	systems := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning system row: %w", err)
		}
		systems = append(systems, name)
	}
	return systems, rows.Err()
}

// SystemBars returns every prestressing bar of one system in file order.
func (s *RefService) SystemBars(system string) ([]PrestressBar, error) {
	rows, err := s.stmtSystemBars.Query(system)
	if err != nil {
		return nil, fmt.Errorf("querying bars for system %s: %w", system, err)
	}
	defer rows.Close()

	bars := []PrestressBar{}
	for rows.Next() {
		var b PrestressBar
		err := rows.Scan(&b.System, &b.Designation, &b.DiameterMM, &b.AreaMM2,
			&b.UltStrengthMPa, &b.BreakingLoadKN, &b.ProofLoadKN, &b.WeightKgM)
		if err != nil {
			return nil, fmt.Errorf("scanning prestress bar row: %w", err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Anchors returns the anchor rows for one (system, designation) key.
// A miss yields an empty, non-nil slice: a bar without anchors is a
// legitimate catalogue state, not an error.
func (s *RefService) Anchors(system, designation string) ([]PrestressAnchor, error) {
	rows, err := s.stmtAnchors.Query(system, designation)
	if err != nil {
		return nil, fmt.Errorf("querying anchors for %s %s: %w", system, designation, err)
	}
	defer rows.Close()

	anchors := []PrestressAnchor{}
	for rows.Next() {
		var a PrestressAnchor
		err := rows.Scan(&a.System, &a.Designation, &a.AnchorType,
			&a.PlateWidthMM, &a.PlateDepthMM, &a.MinSpacingMM, &a.MinEdgeDistMM)
		if err != nil {
			return nil, fmt.Errorf("scanning anchor row: %w", err)
		}
		anchors = append(anchors, a)
	}
	return anchors, rows.Err()
}

// Report returns the load status of all three catalogue tables.
func (s *RefService) Report() LoadReport {
	return s.report
}

// Close releases the prepared statements and the database.
func (s *RefService) Close() error {
	for _, stmt := range []*sql.Stmt{s.stmtBarByName, s.stmtSystemBars, s.stmtAnchors} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}
