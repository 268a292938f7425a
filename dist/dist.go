// Package dist provides the immutable distribution value types consumed by the
// classifier core: Gaussian and Bernoulli marginals and Discrete label
// distributions. The types carry a fixed numeric contract (mean/variance or a
// mass vector) and a MaxDiff divergence used for comparing posteriors.
package dist

import (
	"fmt"
	"math"
)

// Gaussian is an immutable univariate Gaussian with mean/variance
// parameterisation.
type Gaussian struct {
	Mean     float64
	Variance float64
}

// NewGaussian creates a Gaussian from its mean and variance.
func NewGaussian(mean, variance float64) Gaussian {
	return Gaussian{Mean: mean, Variance: variance}
}

// MaxDiff computes the largest absolute difference between the parameters of
// two Gaussians.
func (g Gaussian) MaxDiff(o Gaussian) float64 {
	return math.Max(math.Abs(g.Mean-o.Mean), math.Abs(g.Variance-o.Variance))
}

func (g Gaussian) String() string {
	return fmt.Sprintf("Gaussian(%f, %f)", g.Mean, g.Variance)
}

// Bernoulli is an immutable distribution over {false, true}.
type Bernoulli struct {
	ProbTrue float64
}

// Mean returns the probability of true.
func (b Bernoulli) Mean() float64 {
	return b.ProbTrue
}

// Variance returns p(1-p).
func (b Bernoulli) Variance() float64 {
	return b.ProbTrue * (1 - b.ProbTrue)
}

// MaxDiff computes the absolute difference in probability of true.
func (b Bernoulli) MaxDiff(o Bernoulli) float64 {
	return math.Abs(b.ProbTrue - o.ProbTrue)
}
