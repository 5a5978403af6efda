package domain

import (
	"math"
	"math/cmplx"
)

// VectorialField holds the polarization-and-component-resolved pupil
// amplitudes before phase and apodization are applied.
//
// Pol[channel][component] is a pupil-shaped complex array: channel indexes
// the two output polarization states, component the three Cartesian field
// components.
type VectorialField struct {
	Pol       [2][3][][]complex128
	Amplitude [][]complex128 // Aplanatic apodization, zero outside the mask.
}

// AssembleVectorialField builds the polarization vectors and the aplanatic
// amplitude weighting from the interface optics.
//
// Per sample, with azimuth φ = atan2(Y, X), cosθ the sample-medium cosine
// and sinθ = sqrt(1 - cos²θ):
//
//	pvec = FresnelP · (cosθ·cosφ, cosθ·sinφ, -sinθ)
//	svec = FresnelS · (-sinφ, cosφ, 0)
//	channel 0 = cosφ·pvec - sinφ·svec
//	channel 1 = sinφ·pvec + cosφ·svec
//
// Amplitude = Mask · sqrt(cosImm) / (RefMed · cosθ).
func AssembleVectorialField(grid *PupilGrid, optics *InterfaceOptics, p OpticalParameters) *VectorialField {
	n := grid.N

	f := &VectorialField{Amplitude: makeComplexGrid(n)}
	for ch := 0; ch < 2; ch++ {
		for comp := 0; comp < 3; comp++ {
			f.Pol[ch][comp] = makeComplexGrid(n)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			phi := math.Atan2(grid.Y[i][j], grid.X[i][j])
			cosPhi := complex(math.Cos(phi), 0)
			sinPhi := complex(math.Sin(phi), 0)

			cosTheta := optics.CosMed[i][j]
			sinTheta := cmplx.Sqrt(1 - cosTheta*cosTheta)

			fp := optics.FresnelP[i][j]
			fs := optics.FresnelS[i][j]

			pvec := [3]complex128{
				fp * cosTheta * cosPhi,
				fp * cosTheta * sinPhi,
				-fp * sinTheta,
			}
			svec := [3]complex128{-fs * sinPhi, fs * cosPhi, 0}

			for comp := 0; comp < 3; comp++ {
				f.Pol[0][comp][i][j] = cosPhi*pvec[comp] - sinPhi*svec[comp]
				f.Pol[1][comp][i][j] = sinPhi*pvec[comp] + cosPhi*svec[comp]
			}

			// The apodization is only defined inside the aperture; masked
			// samples stay exactly zero so they drop out of every sum.
			if grid.Mask[i][j] != 0 {
				f.Amplitude[i][j] = cmplx.Sqrt(optics.CosImm[i][j]) /
					(complex(p.RefMed, 0) * cosTheta)
			}
		}
	}

	return f
}

// StrehlNormalization evaluates the ideal (zero optical-path-difference)
// focal peak intensity: the scan integrand summed over all six
// polarization/component channels with no phase term. It is strictly
// positive for any valid aperture and normalizes every scanned Strehl
// value.
func StrehlNormalization(grid *PupilGrid, field *VectorialField) float64 {
	norm := 0.0
	for ch := 0; ch < 2; ch++ {
		for comp := 0; comp < 3; comp++ {
			var sum complex128
			for i := 0; i < grid.N; i++ {
				for j := 0; j < grid.N; j++ {
					if grid.Mask[i][j] == 0 {
						continue
					}
					sum += field.Amplitude[i][j] * field.Pol[ch][comp][i][j]
				}
			}
			norm += real(sum)*real(sum) + imag(sum)*imag(sum)
		}
	}
	return norm
}
