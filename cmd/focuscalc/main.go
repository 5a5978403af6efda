// Package main provides a one-shot CLI for focus optimization.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"go.scopelab.io/focus-api/internal/diag"
	"go.scopelab.io/focus-api/internal/domain"
)

func main() {
	na := flag.Float64("na", 1.49, "Objective numerical aperture")
	refMed := flag.Float64("ref-med", 1.33, "Sample medium refractive index")
	refCov := flag.Float64("ref-cov", 1.52, "Coverslip refractive index")
	refImm := flag.Float64("ref-imm", 1.51, "Immersion medium refractive index")
	refImmNom := flag.Float64("ref-imm-nom", 1.51, "Design immersion refractive index")
	lambda := flag.Float64("lambda", 680, "Vacuum wavelength in nm")
	npupil := flag.Int("npupil", 64, "Pupil samples per axis")
	fwd := flag.Float64("fwd", 150000, "Free working distance in nm")
	depth := flag.Float64("depth", 0, "Imaging depth below the coverslip in nm")
	zlow := flag.Float64("zspread-low", -1000, "Scan window lower bound in nm")
	zhigh := flag.Float64("zspread-high", 1000, "Scan window upper bound in nm")
	debug := flag.Bool("debug", false, "Print intermediate diagnostics")
	plotPath := flag.String("plot", "", "Write the Strehl scan curve as PNG to this path")
	flag.Parse()

	params := domain.OpticalParameters{
		NA:                  *na,
		RefMed:              *refMed,
		RefCov:              *refCov,
		RefImm:              *refImm,
		RefImmNom:           *refImmNom,
		Lambda:              *lambda,
		Npupil:              *npupil,
		FreeWorkingDistance: *fwd,
		Depth:               *depth,
		ZSpread:             [2]float64{*zlow, *zhigh},
		DebugMode:           *debug,
	}

	result, err := domain.FindOptimalFocus(params)
	if err != nil {
		log.Fatalf("Focus optimization failed: %v", err)
	}

	fmt.Printf("Optimal stage position: %.2f nm\n", result.ZVals[0])
	fmt.Printf("Free working distance:  %.2f nm\n", result.ZVals[1])
	fmt.Printf("Focus correction:       %.2f nm\n", result.ZVals[0]-result.ZVals[1])
	fmt.Printf("Max Strehl ratio:       %.6f\n", result.MaxStrehl)
	fmt.Printf("RMS wavefront error:    %.3f nm (%.3f mlambda)\n",
		result.Wrms, 1000*result.Wrms/params.Lambda)
	if result.Wrms < 0 {
		fmt.Println("Note: negative Wrms indicates a numerically perfect focus (Strehl at the proxy ceiling).")
	}
	if math.Abs(*depth) > 0 {
		fmt.Printf("Depth-induced shift:    %.2f nm (estimate %.2f nm)\n",
			result.ZVals[0]-result.ZVals[1], -params.FocusShiftEstimate())
	}

	if *plotPath != "" {
		if err := diag.SaveStrehlScan(result.Scan, *plotPath); err != nil {
			log.Fatalf("Failed to save plot: %v", err)
		}
		fmt.Printf("Strehl scan plot:       %s\n", *plotPath)
	}
}
