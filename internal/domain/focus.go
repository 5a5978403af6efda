package domain

import (
	"fmt"
	"log"
	"math"
)

// FocusResult is the full output of one focus optimization: the z-position
// vector [stagePosition, freeWorkingDistance, -depth], the residual RMS
// wavefront error (same unit as the wavelength), the refined peak Strehl
// value, and the raw scan curve for diagnostics.
type FocusResult struct {
	ZVals     [3]float64
	Wrms      float64
	MaxStrehl float64
	Scan      ZCandidateScan
}

// FindOptimalFocus runs the full pipeline: pupil grid, interface optics,
// vectorial field, Strehl scan, and peak refinement. It is a pure function
// of the parameters except for the optional debug log line.
//
// Wrms is derived from the peak-intensity loss as (λ/2π)·ln(1/MaxStrehl);
// it comes out slightly negative when MaxStrehl exceeds 1, which happens
// legitimately at zero imaging depth and is not an error.
func FindOptimalFocus(p OpticalParameters) (*FocusResult, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optical parameters: %w", err)
	}

	grid := BuildPupilGrid(p.Npupil)
	optics := NewInterfaceOptics(grid, p)
	field := AssembleVectorialField(grid, optics, p)
	norm := StrehlNormalization(grid, field)

	scan := ScanStrehl(grid, optics, field, norm, p)

	zOpt, maxStrehl, err := RefineScanPeak(scan)
	if err != nil {
		return nil, err
	}

	stagePosition := p.FreeWorkingDistance - p.FocusShiftEstimate() + zOpt
	wrms := p.Lambda / (2 * math.Pi) * math.Log(1/maxStrehl)

	result := &FocusResult{
		ZVals:     [3]float64{stagePosition, p.FreeWorkingDistance, -p.Depth},
		Wrms:      wrms,
		MaxStrehl: maxStrehl,
		Scan:      scan,
	}

	if p.DebugMode {
		log.Printf("focus: depth=%.0f nm, free working distance=%.0f nm, stage position=%.1f nm, rms aberration=%.1f mlambda",
			p.Depth, p.FreeWorkingDistance, stagePosition, 1000*wrms/p.Lambda)
	}

	return result, nil
}

// OptimalStagePosition is the two-value entry point: the z-position vector
// and the RMS wavefront error.
func OptimalStagePosition(p OpticalParameters) ([3]float64, float64, error) {
	res, err := FindOptimalFocus(p)
	if err != nil {
		return [3]float64{}, 0, err
	}
	return res.ZVals, res.Wrms, nil
}
