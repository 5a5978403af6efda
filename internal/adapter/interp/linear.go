package interp

import (
	"fmt"
	"math"
	"sort"
)

// Segment represents one interval of a sampled curve with its endpoint
// values.
type Segment struct {
	X0, X1 float64 // Interval boundaries (e.g., wavelengths).
	V0, V1 float64 // Values at the boundaries.
}

// LinearInterpolate evaluates a segment at x.
// Formula:
//
//	f(x) ≈ (1-t)·f(x0) + t·f(x1), t = (x - x0) / (x1 - x0)
func LinearInterpolate(seg Segment, x float64) (float64, error) {
	if seg.X1 <= seg.X0 {
		return 0, fmt.Errorf("invalid segment: X1 must be > X0")
	}

	// Small tolerance for floating point boundary hits.
	const epsilon = 1e-9
	if x < seg.X0-epsilon || x > seg.X1+epsilon {
		return 0, fmt.Errorf("x coordinate %.6f is outside segment [%.6f, %.6f]", x, seg.X0, seg.X1)
	}

	t := (x - seg.X0) / (seg.X1 - seg.X0)
	t = math.Max(0, math.Min(1, t))

	return (1-t)*seg.V0 + t*seg.V1, nil
}

// Curve represents a regularly or irregularly sampled 1D curve for
// interpolation.
type Curve struct {
	X      []float64 // Sample coordinates, strictly increasing.
	Values []float64 // Values[i] corresponds to X[i].
}

// Validate checks if the curve is usable for interpolation.
func (c *Curve) Validate() error {
	if len(c.X) < 2 {
		return fmt.Errorf("curve must have at least 2 samples")
	}
	if len(c.Values) != len(c.X) {
		return fmt.Errorf("number of values (%d) must match number of coordinates (%d)", len(c.Values), len(c.X))
	}
	for i := 1; i < len(c.X); i++ {
		if c.X[i] <= c.X[i-1] {
			return fmt.Errorf("X coordinates must be strictly increasing")
		}
	}
	return nil
}

// At performs linear interpolation at a given coordinate.
func (c *Curve) At(x float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("invalid curve: %w", err)
	}

	if x < c.X[0] || x > c.X[len(c.X)-1] {
		return 0, fmt.Errorf("x coordinate %.6f is outside curve range [%.6f, %.6f]", x, c.X[0], c.X[len(c.X)-1])
	}

	// Locate the segment containing x.
	idx := sort.SearchFloat64s(c.X, x)
	if idx > 0 {
		idx--
	}
	if idx >= len(c.X)-1 {
		idx = len(c.X) - 2
	}

	seg := Segment{
		X0: c.X[idx],
		X1: c.X[idx+1],
		V0: c.Values[idx],
		V1: c.Values[idx+1],
	}

	return LinearInterpolate(seg, x)
}
