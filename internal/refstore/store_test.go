package refstore

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDataDir creates a temporary data directory containing the given
// catalogue files.
func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

// TestOpenEmbeddedDefaults verifies that the store loads the embedded
// catalogue when no data directory override is given.
func TestOpenEmbeddedDefaults(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") failed: %v", err)
	}
	defer svc.Close()

	report := svc.Report()
	if !report.Rebar.OK() || !report.Bars.OK() || !report.Anchors.OK() {
		t.Fatalf("expected all tables to load, got report %+v", report)
	}

	bars, err := svc.Bars()
	if err != nil {
		t.Fatalf("Bars failed: %v", err)
	}
	if len(bars) != 8 {
		t.Fatalf("expected 8 rebar specs, got %d", len(bars))
	}
	// File order must be preserved
	if bars[0].Name != "Y6" || bars[len(bars)-1].Name != "Y32" {
		t.Errorf("expected Y6 first and Y32 last, got %s / %s",
			bars[0].Name, bars[len(bars)-1].Name)
	}
}

func TestBarByName(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	bar, err := svc.BarByName("Y16")
	if err != nil {
		t.Fatalf("BarByName failed: %v", err)
	}
	if bar == nil {
		t.Fatal("expected Y16 to exist")
	}
	if bar.DiameterMM != 16 || bar.AreaMM2 != 201 {
		t.Errorf("unexpected Y16 spec: %+v", bar)
	}

	missing, err := svc.BarByName("Y99")
	if err != nil {
		t.Fatalf("BarByName(Y99) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown bar, got %+v", missing)
	}
}

// TestSystemsFirstSeenOrder verifies that Systems preserves the order
// systems first appear in the file, not alphabetical order.
func TestSystemsFirstSeenOrder(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	systems, err := svc.Systems()
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	want := []string{"Macalloy 1030", "DYWIDAG 950/1050", "Freyssibar 1100"}
	if len(systems) != len(want) {
		t.Fatalf("expected %d systems, got %d: %v", len(want), len(systems), systems)
	}
	for i, name := range want {
		if systems[i] != name {
			t.Errorf("systems[%d] = %s, want %s", i, systems[i], name)
		}
	}
}

func TestSystemBarsPreservesFileOrder(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	bars, err := svc.SystemBars("Macalloy 1030")
	if err != nil {
		t.Fatalf("SystemBars failed: %v", err)
	}
	if len(bars) != 6 {
		t.Fatalf("expected 6 Macalloy bars, got %d", len(bars))
	}
	if bars[0].Designation != "25mm" || bars[5].Designation != "50mm" {
		t.Errorf("file order not preserved: first=%s last=%s",
			bars[0].Designation, bars[5].Designation)
	}
}

func TestAnchorsJoin(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	anchors, err := svc.Anchors("Macalloy 1030", "32mm")
	if err != nil {
		t.Fatalf("Anchors failed: %v", err)
	}
	if len(anchors) != 3 {
		t.Fatalf("expected 3 anchor types for Macalloy 32mm, got %d", len(anchors))
	}
	if anchors[0].AnchorType != "live" {
		t.Errorf("expected live anchor first, got %s", anchors[0].AnchorType)
	}
}

// TestAnchorsJoinMiss verifies that a bar present in the bars table but
// absent from the anchors table yields an empty, non-nil slice — an
// explicit empty state, not an error.
func TestAnchorsJoinMiss(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	// Freyssibar 50mm ships without anchor rows
	anchors, err := svc.Anchors("Freyssibar 1100", "50mm")
	if err != nil {
		t.Fatalf("Anchors failed: %v", err)
	}
	if anchors == nil {
		t.Fatal("expected non-nil empty slice on join miss")
	}
	if len(anchors) != 0 {
		t.Errorf("expected 0 anchors, got %d", len(anchors))
	}
}

func TestOptionalProofLoad(t *testing.T) {
	svc, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	bars, err := svc.SystemBars("Freyssibar 1100")
	if err != nil {
		t.Fatalf("SystemBars failed: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 Freyssibar bars, got %d", len(bars))
	}
	// The 50mm row has no published proof load
	last := bars[2]
	if last.Designation != "50mm" {
		t.Fatalf("expected 50mm last, got %s", last.Designation)
	}
	if last.ProofLoadKN != nil {
		t.Errorf("expected nil proof load, got %v", *last.ProofLoadKN)
	}
	if last.BreakingLoadKN == nil || *last.BreakingLoadKN != 2160 {
		t.Errorf("expected breaking load 2160, got %v", last.BreakingLoadKN)
	}
}

// TestHeaderOnlyTableDegrades verifies that a header-only file yields a
// warning state for that table, an empty Systems result, and no crash.
func TestHeaderOnlyTableDegrades(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		RebarFile: "name,diameter_mm,area_mm2,weight_kg_m\nY12,12,113,0.888\n",
		BarsFile: "system,designation,diameter_mm,area_mm2," +
			"ult_strength_mpa,breaking_load_kn,proof_load_kn,weight_kg_m\n",
		AnchorsFile: "system,designation,anchor_type,plate_width_mm," +
			"plate_depth_mm,min_spacing_mm,min_edge_dist_mm\n",
	})

	svc, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	report := svc.Report()
	if !report.Rebar.OK() {
		t.Errorf("rebar table should load: %v", report.Rebar.Err)
	}
	if report.Bars.OK() {
		t.Error("header-only bars table should report a load error")
	}

	systems, err := svc.Systems()
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	if len(systems) != 0 {
		t.Errorf("expected no systems, got %v", systems)
	}
}

// TestMissingFileDegrades verifies that a missing catalogue file takes
// down only its own table.
func TestMissingFileDegrades(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		RebarFile: "name,diameter_mm,area_mm2,weight_kg_m\nY12,12,113,0.888\n",
	})

	svc, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	report := svc.Report()
	if !report.Rebar.OK() {
		t.Errorf("rebar table should load: %v", report.Rebar.Err)
	}
	if report.Bars.OK() || report.Anchors.OK() {
		t.Error("missing prestress files should report load errors")
	}

	bars, err := svc.Bars()
	if err != nil {
		t.Fatalf("Bars failed: %v", err)
	}
	if len(bars) != 1 || bars[0].Name != "Y12" {
		t.Errorf("rebar tab should still work, got %v", bars)
	}
}

// TestBadRowCollectedNotFatal verifies that a malformed data row is
// reported per-row while the remaining rows load normally.
func TestBadRowCollectedNotFatal(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		RebarFile: "name,diameter_mm,area_mm2,weight_kg_m\n" +
			"Y12,12,113,0.888\n" +
			"Y16,sixteen,201,1.579\n" +
			"Y20,20,314,2.466\n",
		BarsFile: "system,designation,diameter_mm,area_mm2," +
			"ult_strength_mpa,breaking_load_kn,proof_load_kn,weight_kg_m\n" +
			"Macalloy 1030,25mm,25,491,1030,506,415,3.85\n",
		AnchorsFile: "system,designation,anchor_type,plate_width_mm," +
			"plate_depth_mm,min_spacing_mm,min_edge_dist_mm\n" +
			"Macalloy 1030,25mm,live,150,150,250,150\n",
	})

	svc, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	status := svc.Report().Rebar
	if !status.OK() {
		t.Fatalf("table with one bad row should still load: %v", status.Err)
	}
	if status.Rows != 2 {
		t.Errorf("expected 2 good rows, got %d", status.Rows)
	}
	if len(status.RowErrs) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(status.RowErrs))
	}
	if status.RowErrs[0].Line != 3 {
		t.Errorf("expected row error on line 3, got line %d", status.RowErrs[0].Line)
	}
}

// TestOrphanAnchorUnreachable verifies that an anchor row without a
// matching bar loads fine but never surfaces through the join.
func TestOrphanAnchorUnreachable(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		RebarFile: "name,diameter_mm,area_mm2,weight_kg_m\nY12,12,113,0.888\n",
		BarsFile: "system,designation,diameter_mm,area_mm2," +
			"ult_strength_mpa,breaking_load_kn,proof_load_kn,weight_kg_m\n" +
			"Macalloy 1030,25mm,25,491,1030,506,415,3.85\n",
		AnchorsFile: "system,designation,anchor_type,plate_width_mm," +
			"plate_depth_mm,min_spacing_mm,min_edge_dist_mm\n" +
			"Ghost System,99mm,live,500,500,999,500\n",
	})

	svc, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	if !svc.Report().Anchors.OK() {
		t.Fatalf("orphan anchor row should not be a load error: %v", svc.Report().Anchors.Err)
	}

	systems, err := svc.Systems()
	if err != nil {
		t.Fatalf("Systems failed: %v", err)
	}
	for _, sys := range systems {
		if sys == "Ghost System" {
			t.Error("orphan anchor system must not appear in Systems()")
		}
	}
}
