package domain

import (
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// NumScanOffsets is the fixed number of candidate stage offsets evaluated
// per scan.
const NumScanOffsets = 101

// ZCandidate pairs a candidate stage offset (relative to the mismatch-
// corrected working distance) with its normalized Strehl value.
type ZCandidate struct {
	ZOffset float64
	Strehl  float64
}

// ZCandidateScan is the ordered sequence of scanned candidates.
type ZCandidateScan []ZCandidate

// ScanStrehl sweeps NumScanOffsets candidate stage offsets linearly spaced
// over [1.5·ZSpread[0], 1.5·ZSpread[1]] and computes the Strehl proxy at
// each: the six-channel pupil integral of the phase-modulated vectorial
// field, normalized by the zero-aberration value.
//
// Each offset is independent, so the sweep is fanned out over a bounded
// worker pool; every worker writes only its own index slots, which keeps
// the output in offset order without locking.
func ScanStrehl(grid *PupilGrid, optics *InterfaceOptics, field *VectorialField, norm float64, p OpticalParameters) ZCandidateScan {
	offsets := make([]float64, NumScanOffsets)
	floats.Span(offsets, 1.5*p.ZSpread[0], 1.5*p.ZSpread[1])

	scan := make(ZCandidateScan, NumScanOffsets)

	workers := runtime.GOMAXPROCS(0)
	if workers > NumScanOffsets {
		workers = NumScanOffsets
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for k := start; k < NumScanOffsets; k += workers {
				scan[k] = ZCandidate{
					ZOffset: offsets[k],
					Strehl:  strehlAtOffset(grid, optics, field, norm, p, offsets[k]),
				}
			}
		}(w)
	}
	wg.Wait()

	return scan
}

// strehlAtOffset evaluates the Strehl proxy for a single candidate offset.
func strehlAtOffset(grid *PupilGrid, optics *InterfaceOptics, field *VectorialField, norm float64, p OpticalParameters, zOffset float64) float64 {
	n := grid.N
	zStage := p.FreeWorkingDistance - p.FocusShiftEstimate() + zOffset

	fwd := complex(p.FreeWorkingDistance, 0)
	depth := complex(p.Depth, 0)
	refMed := complex(p.RefMed, 0)
	refImm := complex(p.RefImm, 0)
	refImmNom := complex(p.RefImmNom, 0)
	stage := complex(zStage, 0)

	// Phase-modulated amplitude, computed once per pupil sample and shared
	// across the six channels.
	phased := makeComplexGrid(n)
	waveNum := complex(0, 2*math.Pi/p.Lambda)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if grid.Mask[i][j] == 0 {
				continue
			}
			// Optical path difference across the three-medium stack; the
			// depth term picks up a decaying imaginary part in the
			// evanescent zone of the sample medium.
			wz := stage*refImm*optics.CosImm[i][j] -
				fwd*refImmNom*optics.CosImmNom[i][j] +
				depth*refMed*optics.CosMed[i][j]
			phased[i][j] = field.Amplitude[i][j] * cmplx.Exp(waveNum*wz)
		}
	}

	intensity := 0.0
	for ch := 0; ch < 2; ch++ {
		for comp := 0; comp < 3; comp++ {
			var sum complex128
			pol := field.Pol[ch][comp]
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if grid.Mask[i][j] == 0 {
						continue
					}
					sum += phased[i][j] * pol[i][j]
				}
			}
			intensity += real(sum)*real(sum) + imag(sum)*imag(sum)
		}
	}

	return intensity / norm
}
