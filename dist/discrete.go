package dist

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Discrete is an immutable distribution over the label set {0, ..., n-1}.
type Discrete struct {
	probs []float64
}

// NewDiscrete creates a Discrete distribution from a mass vector. The vector
// is copied and normalised to sum to one.
func NewDiscrete(probs []float64) (Discrete, error) {
	if len(probs) == 0 {
		return Discrete{}, errors.New("dist: discrete distribution requires at least one outcome")
	}
	p := make([]float64, len(probs))
	copy(p, probs)
	for _, v := range p {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Discrete{}, errors.Errorf("dist: invalid probability mass %f", v)
		}
	}
	sum := floats.Sum(p)
	if sum <= 0 {
		return Discrete{}, errors.New("dist: discrete distribution has zero total mass")
	}
	floats.Scale(1/sum, p)
	return Discrete{probs: p}, nil
}

// Uniform creates a Discrete distribution with equal mass on n outcomes.
func Uniform(n int) Discrete {
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}
	return Discrete{probs: p}
}

// Dimension returns the number of outcomes.
func (d Discrete) Dimension() int {
	return len(d.probs)
}

// Prob returns the mass assigned to outcome i.
func (d Discrete) Prob(i int) float64 {
	return d.probs[i]
}

// Probs returns a copy of the mass vector.
func (d Discrete) Probs() []float64 {
	p := make([]float64, len(d.probs))
	copy(p, d.probs)
	return p
}

// Mode returns the outcome with the largest mass. Ties resolve to the
// smallest outcome.
func (d Discrete) Mode() int {
	mode := 0
	for i, p := range d.probs {
		if p > d.probs[mode] {
			mode = i
		}
	}
	return mode
}

// Mean returns the expected outcome index.
func (d Discrete) Mean() float64 {
	var m float64
	for i, p := range d.probs {
		m += float64(i) * p
	}
	return m
}

// Median returns the smallest outcome at which the cumulative mass reaches
// one half.
func (d Discrete) Median() int {
	var cum float64
	for i, p := range d.probs {
		cum += p
		if cum >= 0.5 {
			return i
		}
	}
	return len(d.probs) - 1
}

// MaxDiff computes the largest absolute difference in mass between two
// distributions over the same outcomes.
func (d Discrete) MaxDiff(o Discrete) float64 {
	if len(d.probs) != len(o.probs) {
		return math.Inf(1)
	}
	var max float64
	for i := range d.probs {
		if diff := math.Abs(d.probs[i] - o.probs[i]); diff > max {
			max = diff
		}
	}
	return max
}
