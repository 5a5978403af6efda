package domain

import "math"

// InterfaceOptics holds the per-sample propagation-angle cosines and
// Fresnel transmission factors for the sample -> coverslip -> immersion
// stack, for both the actual and the nominal immersion index.
type InterfaceOptics struct {
	CosMed    [][]complex128 // Sample medium; complex in the evanescent zone.
	CosCov    [][]complex128
	CosImm    [][]complex128
	CosImmNom [][]complex128

	// Combined P and S transmission across both interfaces.
	FresnelP [][]complex128
	FresnelS [][]complex128
}

// mediumCosine evaluates sqrt(1 - sin²θ) for the sample medium with the
// branch convention sqrt(|arg|)·(cos(φ/2) - i·sin(φ/2)), φ = atan2(0, arg).
// For arg >= 0 this is the plain real root; for arg < 0 it yields
// -i·sqrt(|arg|), which is the opposite sign from the principal complex
// root. The sign encodes the decay direction of evanescent waves and must
// not be swapped for a generic library sqrt.
func mediumCosine(arg float64) complex128 {
	phi := math.Atan2(0, arg)
	r := math.Sqrt(math.Abs(arg))
	return complex(r*math.Cos(phi/2), -r*math.Sin(phi/2))
}

// NewInterfaceOptics computes the angular and Fresnel-transmission factors
// over the pupil grid. Outside the aperture mask the coverslip/immersion
// cosine arguments can go negative; those samples are never read
// downstream, so they are left as computed.
func NewInterfaceOptics(grid *PupilGrid, p OpticalParameters) *InterfaceOptics {
	n := grid.N
	o := &InterfaceOptics{
		CosMed:    makeComplexGrid(n),
		CosCov:    makeComplexGrid(n),
		CosImm:    makeComplexGrid(n),
		CosImmNom: makeComplexGrid(n),
		FresnelP:  makeComplexGrid(n),
		FresnelS:  makeComplexGrid(n),
	}

	refMed := complex(p.RefMed, 0)
	refCov := complex(p.RefCov, 0)
	refImm := complex(p.RefImm, 0)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r2 := grid.X[i][j]*grid.X[i][j] + grid.Y[i][j]*grid.Y[i][j]
			sin2 := r2 * p.NA * p.NA

			// Sample medium: explicit branch, supports sin²θ > 1.
			cosMed := mediumCosine(1 - sin2/(p.RefMed*p.RefMed))
			// Remaining media stay propagating inside the aperture
			// (NA below each index, enforced at validation).
			cosCov := complex(math.Sqrt(1-sin2/(p.RefCov*p.RefCov)), 0)
			cosImm := complex(math.Sqrt(1-sin2/(p.RefImm*p.RefImm)), 0)
			cosImmNom := complex(math.Sqrt(1-sin2/(p.RefImmNom*p.RefImmNom)), 0)

			o.CosMed[i][j] = cosMed
			o.CosCov[i][j] = cosCov
			o.CosImm[i][j] = cosImm
			o.CosImmNom[i][j] = cosImmNom

			// Fresnel amplitude transmissions: medium -> coverslip and
			// coverslip -> immersion, P and S polarization.
			fpMedCov := 2 * refMed * cosMed / (refMed*cosCov + refCov*cosMed)
			fsMedCov := 2 * refMed * cosMed / (refMed*cosMed + refCov*cosCov)
			fpCovImm := 2 * refCov * cosCov / (refCov*cosImm + refImm*cosCov)
			fsCovImm := 2 * refCov * cosCov / (refCov*cosCov + refImm*cosImm)

			o.FresnelP[i][j] = fpMedCov * fpCovImm
			o.FresnelS[i][j] = fsMedCov * fsCovImm
		}
	}

	return o
}

func makeComplexGrid(n int) [][]complex128 {
	g := make([][]complex128, n)
	for i := range g {
		g[i] = make([]complex128, n)
	}
	return g
}
