package dispersion

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
)

// helper to create a minimal dispersion NetCDF with wavelength and n arrays.
func createDispersionNC(t *testing.T, path string, wavelengths, indices []float64) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer f.Close()

	dim, _ := f.AddDim("wavelength", uint64(len(wavelengths)))
	vwl, _ := f.AddVar("wavelength", netcdf.DOUBLE, []netcdf.Dim{dim})
	vn, _ := f.AddVar("n", netcdf.DOUBLE, []netcdf.Dim{dim})

	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	if err := vwl.WriteFloat64s(wavelengths); err != nil {
		t.Fatalf("write wavelength: %v", err)
	}
	if err := vn.WriteFloat64s(indices); err != nil {
		t.Fatalf("write n: %v", err)
	}
}

// TestIndexAt interpolates a stored curve, exercising the cache on the
// second call.
func TestIndexAt(t *testing.T) {
	dir := t.TempDir()
	createDispersionNC(t, filepath.Join(dir, "water_dispersion.nc"),
		[]float64{400, 500, 600, 700},
		[]float64{1.344, 1.336, 1.332, 1.330})

	store := NewStore(dir)

	n, err := store.IndexAt("water", 550)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(n-1.334) > 1e-12 {
		t.Errorf("n(550): expected 1.334, got %.6f", n)
	}

	// Cached path must return the same value.
	n2, err := store.IndexAt("water", 550)
	if err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if n2 != n {
		t.Errorf("cached lookup disagrees: %.6f vs %.6f", n2, n)
	}
}

// TestIndexAt_Errors covers missing media and out-of-range wavelengths.
func TestIndexAt_Errors(t *testing.T) {
	dir := t.TempDir()
	createDispersionNC(t, filepath.Join(dir, "water_dispersion.nc"),
		[]float64{400, 700},
		[]float64{1.344, 1.330})
	store := NewStore(dir)

	if _, err := store.IndexAt("glycerol", 550); err == nil {
		t.Error("expected error for missing medium")
	}
	if _, err := store.IndexAt("water", 900); err == nil {
		t.Error("expected error for out-of-range wavelength")
	}
}

// TestListMedia scans the directory for dispersion files.
func TestListMedia(t *testing.T) {
	dir := t.TempDir()
	createDispersionNC(t, filepath.Join(dir, "water_dispersion.nc"), []float64{400, 700}, []float64{1.344, 1.330})
	createDispersionNC(t, filepath.Join(dir, "immersion-oil_dispersion.nc"), []float64{400, 700}, []float64{1.53, 1.51})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write decoy: %v", err)
	}

	store := NewStore(dir)
	media, err := store.ListMedia()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"immersion-oil", "water"}
	if len(media) != len(want) {
		t.Fatalf("expected %d media, got %d (%v)", len(want), len(media), media)
	}
	for i := range want {
		if media[i] != want[i] {
			t.Errorf("media[%d]: expected %s, got %s", i, want[i], media[i])
		}
	}

	if _, err := NewStore(filepath.Join(dir, "missing")).ListMedia(); err == nil {
		t.Error("expected error for missing directory")
	}
}
