// Package main generates NetCDF dispersion tables from the built-in
// Sellmeier medium catalog.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fhs/go-netcdf/netcdf"
	"gonum.org/v1/gonum/floats"

	"go.scopelab.io/focus-api/internal/domain"
)

func main() {
	// Command line flags
	outDir := flag.String("out", "./data/dispersion", "Output directory for NetCDF files")
	lambdaMin := flag.Float64("lambda-min", 400.0, "Minimum wavelength in nm")
	lambdaMax := flag.Float64("lambda-max", 1100.0, "Maximum wavelength in nm")
	samples := flag.Int("samples", 141, "Number of wavelength samples")
	flag.Parse()

	if *lambdaMin >= *lambdaMax {
		log.Fatalf("Invalid wavelength range: [%.1f, %.1f]", *lambdaMin, *lambdaMax)
	}
	if *samples < 2 {
		log.Fatalf("Need at least 2 samples, got %d", *samples)
	}

	media := domain.AllMedia()
	log.Printf("Generating dispersion tables for %d catalog media", len(media))
	log.Printf("Wavelength range: %.1f-%.1f nm, %d samples", *lambdaMin, *lambdaMax, *samples)

	// Create output directory
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	wavelengths := make([]float64, *samples)
	floats.Span(wavelengths, *lambdaMin, *lambdaMax)

	generated := 0
	for _, medium := range media {
		if err := generateTable(medium, wavelengths, *outDir); err != nil {
			log.Printf("Warning: Failed to generate table for %s: %v", medium.Name, err)
			continue
		}
		log.Printf("✓ Generated %s_dispersion.nc", medium.Name)
		generated++
	}

	log.Printf("\n=== Generation Complete ===")
	log.Printf("Files created in: %s", *outDir)
	log.Printf("Tables: %d of %d media", generated, len(media))
}

// generateTable samples a medium's Sellmeier curve and writes it as NetCDF.
func generateTable(medium domain.Medium, wavelengths []float64, outDir string) error {
	indices := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		n, err := medium.IndexAt(wl)
		if err != nil {
			return fmt.Errorf("Sellmeier evaluation at %.1f nm: %w", wl, err)
		}
		indices[i] = n
	}

	path := filepath.Join(outDir, fmt.Sprintf("%s_dispersion.nc", medium.Name))
	return writeTable(path, wavelengths, indices)
}

// writeTable writes wavelength and index arrays to a NetCDF file.
func writeTable(path string, wavelengths, indices []float64) error {
	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer ds.Close()

	dim, err := ds.AddDim("wavelength", uint64(len(wavelengths)))
	if err != nil {
		return err
	}

	wlVar, err := ds.AddVar("wavelength", netcdf.DOUBLE, []netcdf.Dim{dim})
	if err != nil {
		return err
	}

	nVar, err := ds.AddVar("n", netcdf.DOUBLE, []netcdf.Dim{dim})
	if err != nil {
		return err
	}

	if err := ds.EndDef(); err != nil {
		return fmt.Errorf("failed to end define mode: %w", err)
	}

	if err := wlVar.WriteFloat64s(wavelengths); err != nil {
		return fmt.Errorf("failed to write wavelengths: %w", err)
	}
	if err := nVar.WriteFloat64s(indices); err != nil {
		return fmt.Errorf("failed to write indices: %w", err)
	}

	return nil
}
