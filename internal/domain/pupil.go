package domain

// PupilGrid samples the unit pupil disk on a regular N x N grid.
// Coordinates are pixel-centered: the first sample sits at -1 + step/2,
// the last at 1 - step/2, with step = 2/N on both axes.
type PupilGrid struct {
	N    int
	X    [][]float64 // X[i][j] varies along columns.
	Y    [][]float64 // Y[i][j] varies along rows.
	Mask [][]float64 // 1 where X²+Y² < 1, else 0.
}

// BuildPupilGrid constructs the pupil sampling grid for npupil samples per
// axis. npupil must be >= 1 (enforced by OpticalParameters.Validate).
func BuildPupilGrid(npupil int) *PupilGrid {
	step := 2.0 / float64(npupil)

	axis := make([]float64, npupil)
	for k := 0; k < npupil; k++ {
		axis[k] = -1 + step/2 + float64(k)*step
	}

	grid := &PupilGrid{
		N:    npupil,
		X:    make([][]float64, npupil),
		Y:    make([][]float64, npupil),
		Mask: make([][]float64, npupil),
	}

	for i := 0; i < npupil; i++ {
		grid.X[i] = make([]float64, npupil)
		grid.Y[i] = make([]float64, npupil)
		grid.Mask[i] = make([]float64, npupil)
		for j := 0; j < npupil; j++ {
			grid.X[i][j] = axis[j]
			grid.Y[i][j] = axis[i]
			if axis[j]*axis[j]+axis[i]*axis[i] < 1 {
				grid.Mask[i][j] = 1
			}
		}
	}

	return grid
}

// Step returns the sample spacing of the grid.
func (g *PupilGrid) Step() float64 {
	return 2.0 / float64(g.N)
}
