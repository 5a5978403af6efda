package domain

import (
	"math"
	"math/cmplx"
	"testing"
)

func testParams() OpticalParameters {
	return OpticalParameters{
		NA:                  1.49,
		RefMed:              1.33,
		RefCov:              1.52,
		RefImm:              1.51,
		RefImmNom:           1.51,
		Lambda:              680,
		Npupil:              64,
		FreeWorkingDistance: 150000,
		Depth:               0,
		ZSpread:             [2]float64{-1000, 1000},
	}
}

// TestMediumCosine_Branch checks the sign convention of the complex square
// root used for the sample medium.
func TestMediumCosine_Branch(t *testing.T) {
	// Positive argument: plain real root.
	got := mediumCosine(0.25)
	if math.Abs(real(got)-0.5) > 1e-12 || math.Abs(imag(got)) > 1e-12 {
		t.Errorf("mediumCosine(0.25): expected 0.5, got %v", got)
	}

	// Negative argument: -i*sqrt(|arg|), NOT the principal root +i*sqrt.
	got = mediumCosine(-0.25)
	if math.Abs(real(got)) > 1e-12 || math.Abs(imag(got)-(-0.5)) > 1e-12 {
		t.Errorf("mediumCosine(-0.25): expected -0.5i, got %v", got)
	}

	principal := cmplx.Sqrt(complex(-0.25, 0))
	if imag(got) == imag(principal) {
		t.Error("branch must differ from the principal complex sqrt for negative arguments")
	}

	// Zero argument.
	if mediumCosine(0) != 0 {
		t.Errorf("mediumCosine(0): expected 0, got %v", mediumCosine(0))
	}
}

// TestNewInterfaceOptics_OnAxis checks the normal-incidence limit at the
// exact pupil center (odd grid count puts a sample at the origin).
func TestNewInterfaceOptics_OnAxis(t *testing.T) {
	p := testParams()
	p.Npupil = 33
	grid := BuildPupilGrid(p.Npupil)
	optics := NewInterfaceOptics(grid, p)

	c := p.Npupil / 2 // origin sample
	if grid.X[c][c] != 0 || grid.Y[c][c] != 0 {
		t.Fatalf("expected origin sample at [%d][%d]", c, c)
	}

	for name, cos := range map[string]complex128{
		"CosMed":    optics.CosMed[c][c],
		"CosCov":    optics.CosCov[c][c],
		"CosImm":    optics.CosImm[c][c],
		"CosImmNom": optics.CosImmNom[c][c],
	} {
		if cmplx.Abs(cos-1) > 1e-12 {
			t.Errorf("%s at the axis: expected 1, got %v", name, cos)
		}
	}

	// At normal incidence P and S transmissions coincide:
	// t = 2 n1/(n1+n2) per interface.
	want := (2 * p.RefMed / (p.RefMed + p.RefCov)) * (2 * p.RefCov / (p.RefCov + p.RefImm))
	if cmplx.Abs(optics.FresnelP[c][c]-complex(want, 0)) > 1e-12 {
		t.Errorf("FresnelP on axis: expected %.8f, got %v", want, optics.FresnelP[c][c])
	}
	if cmplx.Abs(optics.FresnelS[c][c]-complex(want, 0)) > 1e-12 {
		t.Errorf("FresnelS on axis: expected %.8f, got %v", want, optics.FresnelS[c][c])
	}
}

// TestNewInterfaceOptics_EvanescentZone checks that sample-medium cosines
// beyond the critical angle pick up the decaying imaginary branch while the
// immersion-side cosines stay real inside the aperture.
func TestNewInterfaceOptics_EvanescentZone(t *testing.T) {
	p := testParams()
	grid := BuildPupilGrid(p.Npupil)
	optics := NewInterfaceOptics(grid, p)

	evanescent := 0
	for i := 0; i < grid.N; i++ {
		for j := 0; j < grid.N; j++ {
			if grid.Mask[i][j] == 0 {
				continue
			}
			r2 := grid.X[i][j]*grid.X[i][j] + grid.Y[i][j]*grid.Y[i][j]
			arg := 1 - r2*p.NA*p.NA/(p.RefMed*p.RefMed)
			cosMed := optics.CosMed[i][j]

			if arg >= 0 {
				if imag(cosMed) != 0 {
					t.Fatalf("propagating sample at r²=%.4f has imaginary cosine %v", r2, cosMed)
				}
			} else {
				evanescent++
				if imag(cosMed) >= 0 {
					t.Fatalf("evanescent sample at r²=%.4f must have negative imaginary part, got %v", r2, cosMed)
				}
				if math.Abs(real(cosMed)) > 1e-12 {
					t.Fatalf("evanescent cosine must be purely imaginary, got %v", cosMed)
				}
			}

			if imag(optics.CosImm[i][j]) != 0 || imag(optics.CosCov[i][j]) != 0 {
				t.Fatal("coverslip/immersion cosines must stay real inside the aperture")
			}
		}
	}

	// NA=1.49 into n=1.33 guarantees an evanescent annulus.
	if evanescent == 0 {
		t.Error("expected evanescent samples for NA above the sample-medium index")
	}
}

// TestValidate covers the fail-fast parameter checks.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OpticalParameters)
		valid  bool
	}{
		{"baseline", func(p *OpticalParameters) {}, true},
		{"zero NA", func(p *OpticalParameters) { p.NA = 0 }, false},
		{"negative medium index", func(p *OpticalParameters) { p.RefMed = -1.33 }, false},
		{"zero wavelength", func(p *OpticalParameters) { p.Lambda = 0 }, false},
		{"zero pupil count", func(p *OpticalParameters) { p.Npupil = 0 }, false},
		{"inverted zspread", func(p *OpticalParameters) { p.ZSpread = [2]float64{500, -500} }, false},
		{"negative depth", func(p *OpticalParameters) { p.Depth = -10 }, false},
		{"NA above coverslip index", func(p *OpticalParameters) { p.RefCov = 1.40 }, false},
		{"NA above immersion index", func(p *OpticalParameters) { p.RefImm = 1.45 }, false},
		{"NA above nominal immersion index", func(p *OpticalParameters) { p.RefImmNom = 1.45 }, false},
		{"NA above sample medium index is allowed", func(p *OpticalParameters) { p.RefMed = 1.0 }, true},
	}

	for _, tt := range tests {
		p := testParams()
		tt.mutate(&p)
		err := p.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
