package refstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ────────────────────────────────────────────────────────────
// Typed table parsing
// ────────────────────────────────────────────────────────────
//
// Catalogue files are comma-delimited with a header row that acts as the
// schema: columns are located by header name, not position, so files may
// order their columns freely. A row that fails to parse is collected as
// a RowError and skipped; it never aborts the load.

var (
	// ErrMissingHeader is reported when a file has no header row at all.
	ErrMissingHeader = errors.New("missing header row")
	// ErrNoDataRows is reported when a file has a header but no data.
	ErrNoDataRows = errors.New("no data rows")
)

// RowError records a data row that could not be parsed.
type RowError struct {
	Line int // 1-based line number in the source file
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// table is a parsed delimited file: the header naming each column plus
// every data row that matched the header's arity.
type table struct {
	header  []string
	rows    [][]string
	lines   []int // source line per row, parallel to rows
	rowErrs []RowError
}

// readTable parses a delimited file with a header row. Malformed data
// rows are collected into table.rowErrs rather than failing the parse;
// only a missing header or a header with zero data rows is an error.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // arity checked per row against the header

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	t := &table{header: header}
	line := 1
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.rowErrs = append(t.rowErrs, RowError{Line: line, Err: err})
			continue
		}
		if len(record) != len(header) {
			t.rowErrs = append(t.rowErrs, RowError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}
		t.rows = append(t.rows, record)
		t.lines = append(t.lines, line)
	}

	if len(t.rows) == 0 && len(t.rowErrs) == 0 {
		return nil, ErrNoDataRows
	}
	return t, nil
}

// column returns the index of a named column, or an error if the header
// does not define it.
func (t *table) column(name string) (int, error) {
	for i, h := range t.header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not in header", name)
}

// columns resolves several named columns at once.
func (t *table) columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	return idx, nil
}

// parseFloat parses a required numeric field.
func parseFloat(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", field)
	}
	return v, nil
}

// parseOptFloat parses a numeric field that may be absent. An empty or
// non-numeric value yields nil rather than an error: some manufacturers
// do not publish every load figure, and a gap in one column should not
// reject the whole record.
func parseOptFloat(field string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ────────────────────────────────────────────────────────────
// Per-entity decoders
// ────────────────────────────────────────────────────────────

// decodeBarSpecs converts a parsed table into BarSpec records. Rows that
// fail field parsing are appended to the table's row errors.
func decodeBarSpecs(t *table) ([]BarSpec, error) {
	idx, err := t.columns("name", "diameter_mm", "area_mm2", "weight_kg_m")
	if err != nil {
		return nil, err
	}

	var specs []BarSpec
	for i, row := range t.rows {
		spec := BarSpec{Name: strings.TrimSpace(row[idx[0]])}
		if spec.Name == "" {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: errors.New("empty bar name")})
			continue
		}
		var convErr error
		if spec.DiameterMM, convErr = parseFloat(row[idx[1]]); convErr == nil {
			if spec.AreaMM2, convErr = parseFloat(row[idx[2]]); convErr == nil {
				spec.WeightKgM, convErr = parseFloat(row[idx[3]])
			}
		}
		if convErr != nil {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: convErr})
			continue
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// decodePrestressBars converts a parsed table into PrestressBar records.
// breaking_load_kn and proof_load_kn are optional per record.
func decodePrestressBars(t *table) ([]PrestressBar, error) {
	idx, err := t.columns("system", "designation", "diameter_mm", "area_mm2",
		"ult_strength_mpa", "breaking_load_kn", "proof_load_kn", "weight_kg_m")
	if err != nil {
		return nil, err
	}

	var bars []PrestressBar
	for i, row := range t.rows {
		bar := PrestressBar{
			System:      strings.TrimSpace(row[idx[0]]),
			Designation: strings.TrimSpace(row[idx[1]]),
		}
		if bar.System == "" || bar.Designation == "" {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: errors.New("empty system or designation")})
			continue
		}
		var convErr error
		if bar.DiameterMM, convErr = parseFloat(row[idx[2]]); convErr == nil {
			if bar.AreaMM2, convErr = parseFloat(row[idx[3]]); convErr == nil {
				if bar.UltStrengthMPa, convErr = parseFloat(row[idx[4]]); convErr == nil {
					bar.WeightKgM, convErr = parseFloat(row[idx[7]])
				}
			}
		}
		if convErr != nil {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: convErr})
			continue
		}
		bar.BreakingLoadKN = parseOptFloat(row[idx[5]])
		bar.ProofLoadKN = parseOptFloat(row[idx[6]])
		bars = append(bars, bar)
	}
	return bars, nil
}

// decodePrestressAnchors converts a parsed table into PrestressAnchor
// records.
func decodePrestressAnchors(t *table) ([]PrestressAnchor, error) {
	idx, err := t.columns("system", "designation", "anchor_type",
		"plate_width_mm", "plate_depth_mm", "min_spacing_mm", "min_edge_dist_mm")
	if err != nil {
		return nil, err
	}

	var anchors []PrestressAnchor
	for i, row := range t.rows {
		a := PrestressAnchor{
			System:      strings.TrimSpace(row[idx[0]]),
			Designation: strings.TrimSpace(row[idx[1]]),
			AnchorType:  strings.TrimSpace(row[idx[2]]),
		}
		if a.System == "" || a.Designation == "" || a.AnchorType == "" {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: errors.New("empty key field")})
			continue
		}
		var convErr error
		if a.PlateWidthMM, convErr = parseFloat(row[idx[3]]); convErr == nil {
			if a.PlateDepthMM, convErr = parseFloat(row[idx[4]]); convErr == nil {
				if a.MinSpacingMM, convErr = parseFloat(row[idx[5]]); convErr == nil {
					a.MinEdgeDistMM, convErr = parseFloat(row[idx[6]])
				}
			}
		}
		if convErr != nil {
			t.rowErrs = append(t.rowErrs, RowError{Line: t.lines[i], Err: convErr})
			continue
		}
		anchors = append(anchors, a)
	}
	return anchors, nil
}
