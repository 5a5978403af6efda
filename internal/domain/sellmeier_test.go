package domain

import (
	"math"
	"testing"
)

// TestMediumIndexAt checks the catalog against handbook values near the
// sodium D line.
func TestMediumIndexAt(t *testing.T) {
	tests := []struct {
		medium   string
		lambdaNm float64
		want     float64
		tol      float64
	}{
		{"water", 589.3, 1.3330, 2e-3},
		{"n-bk7", 587.6, 1.5168, 5e-4},
		{"fused-silica", 587.6, 1.4585, 1e-3},
		{"immersion-oil", 546.0, 1.5180, 1e-3},
	}

	for _, tt := range tests {
		m, ok := GetMedium(tt.medium)
		if !ok {
			t.Fatalf("medium %s missing from catalog", tt.medium)
		}
		n, err := m.IndexAt(tt.lambdaNm)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.medium, err)
		}
		if math.Abs(n-tt.want) > tt.tol {
			t.Errorf("%s at %.1f nm: expected %.4f±%.0e, got %.5f", tt.medium, tt.lambdaNm, tt.want, tt.tol, n)
		}
	}
}

// TestMediumIndexAt_NormalDispersion checks that every catalog medium has a
// higher index in the blue than in the red across the visible band.
func TestMediumIndexAt_NormalDispersion(t *testing.T) {
	for _, m := range AllMedia() {
		blue, err := m.IndexAt(480)
		if err != nil {
			t.Fatalf("%s: %v", m.Name, err)
		}
		red, err := m.IndexAt(680)
		if err != nil {
			t.Fatalf("%s: %v", m.Name, err)
		}
		if blue <= red {
			t.Errorf("%s: expected normal dispersion, got n(480)=%.5f <= n(680)=%.5f", m.Name, blue, red)
		}
	}
}

// TestMediumIndexAt_Invalid covers the error paths.
func TestMediumIndexAt_Invalid(t *testing.T) {
	m, _ := GetMedium("water")
	if _, err := m.IndexAt(0); err == nil {
		t.Error("expected error for zero wavelength")
	}
	if _, err := m.IndexAt(-500); err == nil {
		t.Error("expected error for negative wavelength")
	}

	bad := Medium{Name: "bad", B: []float64{1}, C: []float64{1, 2}}
	if _, err := bad.IndexAt(500); err == nil {
		t.Error("expected error for malformed coefficients")
	}

	if _, ok := GetMedium("unobtainium"); ok {
		t.Error("unknown medium must not resolve")
	}
}
