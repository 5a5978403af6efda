// Package diag renders diagnostic plots for debug mode.
package diag

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.scopelab.io/focus-api/internal/domain"
)

// SaveStrehlScan writes the Strehl-vs-offset curve to a PNG file. Purely
// presentational; callers must not let a plot failure affect results.
func SaveStrehlScan(scan domain.ZCandidateScan, path string) error {
	if len(scan) == 0 {
		return fmt.Errorf("empty scan")
	}

	points := make(plotter.XYs, len(scan))
	for i, c := range scan {
		points[i].X = c.ZOffset
		points[i].Y = c.Strehl
	}

	p := plot.New()
	p.Title.Text = "Strehl ratio vs stage offset"
	p.X.Label.Text = "stage offset (nm)"
	p.Y.Label.Text = "Strehl ratio"

	if err := plotutil.AddLinePoints(p, "Strehl", points); err != nil {
		return fmt.Errorf("failed to add scan curve: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
