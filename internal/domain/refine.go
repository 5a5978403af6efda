package domain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateFit reports a quadratic peak fit whose leading coefficient
// vanished: the five window points are collinear and the parabola vertex is
// undefined.
var ErrDegenerateFit = errors.New("degenerate quadratic fit: collinear scan points")

// fitWindowHalf is the number of neighbors kept on each side of the
// discrete maximum for the refinement fit.
const fitWindowHalf = 2

// RefineScanPeak locates the discrete maximum of the scan, fits a degree-2
// least-squares polynomial through the symmetric 5-point window around it,
// and returns the parabola vertex: the refined optimal offset and the peak
// Strehl value there. The window index is clamped so the fit never reads
// out of range when the maximum sits at a scan edge.
func RefineScanPeak(scan ZCandidateScan) (zOpt, peakStrehl float64, err error) {
	if len(scan) < 2*fitWindowHalf+1 {
		return 0, 0, fmt.Errorf("scan too short for refinement: %d points", len(scan))
	}

	indz := 0
	for k, c := range scan {
		if c.Strehl > scan[indz].Strehl {
			indz = k
		}
	}
	if indz < fitWindowHalf {
		indz = fitWindowHalf
	}
	if indz > len(scan)-1-fitWindowHalf {
		indz = len(scan) - 1 - fitWindowHalf
	}

	// Least-squares fit S(z) = a·z² + b·z + c over the window. The fit
	// runs in coordinates centered on the window to keep the Vandermonde
	// system well conditioned; the vertex is shifted back afterwards.
	const points = 2*fitWindowHalf + 1
	zc := scan[indz].ZOffset
	vand := mat.NewDense(points, 3, nil)
	rhs := mat.NewDense(points, 1, nil)
	for r := 0; r < points; r++ {
		c := scan[indz-fitWindowHalf+r]
		u := c.ZOffset - zc
		vand.Set(r, 0, u*u)
		vand.Set(r, 1, u)
		vand.Set(r, 2, 1)
		rhs.Set(r, 0, c.Strehl)
	}

	var qr mat.QR
	qr.Factorize(vand)
	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, rhs); err != nil {
		return 0, 0, fmt.Errorf("quadratic fit failed: %w", err)
	}

	a := coef.At(0, 0)
	b := coef.At(1, 0)
	c := coef.At(2, 0)

	// Collinear window points leave the leading coefficient at numerical
	// noise level. Compare the curvature sag across the window against the
	// data magnitude so the check is independent of the offset units.
	span := scan[indz+fitWindowHalf].ZOffset - scan[indz-fitWindowHalf].ZOffset
	if math.Abs(a)*span*span <= 1e-9*math.Max(1, math.Abs(c)) {
		return 0, 0, ErrDegenerateFit
	}
	uOpt := -b / (2 * a)
	if math.IsNaN(uOpt) || math.IsInf(uOpt, 0) {
		return 0, 0, ErrDegenerateFit
	}

	peakStrehl = a*uOpt*uOpt + b*uOpt + c
	return zc + uOpt, peakStrehl, nil
}
