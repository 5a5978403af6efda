package csv

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writePresetCSV(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "objectives.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

const validCSV = `objective,na,ref_imm_nom,fwd_nm
apo100x-oil,1.49,1.518,150000
plan60x-water,1.27,1.333,280000
`

// TestLoadObjective loads a preset row including case-insensitive lookup.
func TestLoadObjective(t *testing.T) {
	dir := t.TempDir()
	writePresetCSV(t, dir, validCSV)
	store := NewPresetStore(dir)

	preset, err := store.LoadObjective("Apo100x-Oil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if preset.Name != "apo100x-oil" {
		t.Errorf("name: expected apo100x-oil, got %s", preset.Name)
	}
	if math.Abs(preset.NA-1.49) > 1e-12 {
		t.Errorf("NA: expected 1.49, got %g", preset.NA)
	}
	if math.Abs(preset.RefImmNom-1.518) > 1e-12 {
		t.Errorf("RefImmNom: expected 1.518, got %g", preset.RefImmNom)
	}
	if math.Abs(preset.FreeWorkingDistance-150000) > 1e-9 {
		t.Errorf("FreeWorkingDistance: expected 150000, got %g", preset.FreeWorkingDistance)
	}
}

// TestLoadObjective_Errors covers missing file, unknown objective, bad
// header and bad values.
func TestLoadObjective_Errors(t *testing.T) {
	store := NewPresetStore(t.TempDir())
	if _, err := store.LoadObjective("apo100x-oil"); err == nil {
		t.Error("expected error for missing CSV")
	}

	dir := t.TempDir()
	writePresetCSV(t, dir, validCSV)
	store = NewPresetStore(dir)
	if _, err := store.LoadObjective("missing-objective"); err == nil {
		t.Error("expected error for unknown objective")
	}

	dir = t.TempDir()
	writePresetCSV(t, dir, "objective,na,wrong,fwd_nm\napo,1.4,1.5,100\n")
	store = NewPresetStore(dir)
	if _, err := store.LoadObjective("apo"); err == nil {
		t.Error("expected error for invalid header")
	}

	dir = t.TempDir()
	writePresetCSV(t, dir, "objective,na,ref_imm_nom,fwd_nm\napo,not-a-number,1.5,100\n")
	store = NewPresetStore(dir)
	if _, err := store.LoadObjective("apo"); err == nil {
		t.Error("expected error for unparseable NA")
	}

	dir = t.TempDir()
	writePresetCSV(t, dir, "objective,na,ref_imm_nom,fwd_nm\napo,-1.4,1.5,100\n")
	store = NewPresetStore(dir)
	if _, err := store.LoadObjective("apo"); err == nil {
		t.Error("expected error for non-positive NA")
	}
}

// TestListObjectives returns the row names in file order.
func TestListObjectives(t *testing.T) {
	dir := t.TempDir()
	writePresetCSV(t, dir, validCSV)
	store := NewPresetStore(dir)

	names, err := store.ListObjectives()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"apo100x-oil", "plan60x-water"}
	if len(names) != len(want) {
		t.Fatalf("expected %d objectives, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("objective %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}
