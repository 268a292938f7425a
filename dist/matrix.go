package dist

// GaussianMatrix is a grid of Gaussian marginals, indexed by class then
// feature. Grids are replaced wholesale rather than mutated in place, so a
// captured reference is always a consistent snapshot.
type GaussianMatrix [][]Gaussian

// NewGaussianMatrix creates a rows x cols grid with every cell set to the
// given Gaussian.
func NewGaussianMatrix(rows, cols int, g Gaussian) GaussianMatrix {
	m := make(GaussianMatrix, rows)
	for i := range m {
		m[i] = make([]Gaussian, cols)
		for j := range m[i] {
			m[i][j] = g
		}
	}
	return m
}

// Clone returns a deep copy of the grid.
func (m GaussianMatrix) Clone() GaussianMatrix {
	if m == nil {
		return nil
	}
	c := make(GaussianMatrix, len(m))
	for i := range m {
		c[i] = make([]Gaussian, len(m[i]))
		copy(c[i], m[i])
	}
	return c
}

// MaxDiff computes the largest cell-wise MaxDiff between two grids of the
// same shape.
func (m GaussianMatrix) MaxDiff(o GaussianMatrix) float64 {
	var max float64
	for i := range m {
		for j := range m[i] {
			if diff := m[i][j].MaxDiff(o[i][j]); diff > max {
				max = diff
			}
		}
	}
	return max
}
