package domain

import "fmt"

// OpticalParameters holds the fixed physical description of one focusing
// configuration. All lengths (Lambda, FreeWorkingDistance, Depth, ZSpread)
// share the same unit; nanometers are used throughout this repo.
type OpticalParameters struct {
	NA        float64 // Numerical aperture of the objective.
	RefMed    float64 // Refractive index of the sample medium.
	RefCov    float64 // Refractive index of the coverslip.
	RefImm    float64 // Refractive index of the actual immersion medium.
	RefImmNom float64 // Design (nominal) immersion index of the objective.

	Lambda float64 // Vacuum wavelength.
	Npupil int     // Pupil samples per axis.

	FreeWorkingDistance float64    // Nominal free working distance (fwd).
	Depth               float64    // Imaging depth below the coverslip, >= 0.
	ZSpread             [2]float64 // Stage scan half-range [low, high].

	DebugMode bool // Emit diagnostic text/plot; never affects results.
}

// Validate checks the parameter set before any computation.
// The sample-medium index is deliberately exempt from the NA bound: rays
// beyond the critical angle there are handled by the evanescent branch in
// the interface optics model. The coverslip and both immersion indices have
// no such branch, so NA must keep their propagation angles real.
func (p OpticalParameters) Validate() error {
	if p.NA <= 0 {
		return fmt.Errorf("numerical aperture must be positive, got %g", p.NA)
	}
	for _, idx := range []struct {
		name  string
		value float64
	}{
		{"sample medium index", p.RefMed},
		{"coverslip index", p.RefCov},
		{"immersion index", p.RefImm},
		{"nominal immersion index", p.RefImmNom},
	} {
		if idx.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", idx.name, idx.value)
		}
	}
	if p.Lambda <= 0 {
		return fmt.Errorf("wavelength must be positive, got %g", p.Lambda)
	}
	if p.Npupil < 1 {
		return fmt.Errorf("pupil sampling must be at least 1, got %d", p.Npupil)
	}
	if p.Depth < 0 {
		return fmt.Errorf("imaging depth must be non-negative, got %g", p.Depth)
	}
	if p.ZSpread[0] > p.ZSpread[1] {
		return fmt.Errorf("z-spread low (%g) must not exceed high (%g)", p.ZSpread[0], p.ZSpread[1])
	}
	if p.NA >= p.RefCov {
		return fmt.Errorf("numerical aperture %g must be below coverslip index %g", p.NA, p.RefCov)
	}
	if p.NA >= p.RefImm {
		return fmt.Errorf("numerical aperture %g must be below immersion index %g", p.NA, p.RefImm)
	}
	if p.NA >= p.RefImmNom {
		return fmt.Errorf("numerical aperture %g must be below nominal immersion index %g", p.NA, p.RefImmNom)
	}
	return nil
}

// FocusShiftEstimate returns the first-order analytic estimate of the focal
// shift caused by the medium/immersion index mismatch at the configured
// depth. The stage scan is centered on fwd minus this shift.
func (p OpticalParameters) FocusShiftEstimate() float64 {
	return 1.25 * (p.RefImm / p.RefMed) * p.Depth
}
