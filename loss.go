package bayespoint

import (
	"math"

	"github.com/hscells/bayespoint/dist"
)

// Loss selects the loss function that turns a posterior label distribution
// into a Bayes-optimal point estimate.
type Loss uint8

const (
	// ZeroOneLoss selects the posterior mode.
	ZeroOneLoss Loss = iota
	// SquaredLoss minimises expected squared error over label indexes.
	SquaredLoss
	// AbsoluteLoss minimises expected absolute error over label indexes,
	// selecting the posterior median.
	AbsoluteLoss
	// CustomLoss minimises the expectation of a caller-supplied loss.
	CustomLoss
)

func (l Loss) String() string {
	switch l {
	case ZeroOneLoss:
		return "zero-one"
	case SquaredLoss:
		return "squared"
	case AbsoluteLoss:
		return "absolute"
	case CustomLoss:
		return "custom"
	}
	return "unknown"
}

// LossFunc is a caller-supplied loss over (estimate, truth) label pairs.
type LossFunc func(estimate, truth int) float64

func pointEstimate(d dist.Discrete, loss Loss, custom LossFunc) (int, error) {
	switch loss {
	case ZeroOneLoss:
		return d.Mode(), nil
	case SquaredLoss:
		return minimiseExpectedLoss(d, func(estimate, truth int) float64 {
			diff := float64(estimate - truth)
			return diff * diff
		}), nil
	case AbsoluteLoss:
		return minimiseExpectedLoss(d, func(estimate, truth int) float64 {
			return math.Abs(float64(estimate - truth))
		}), nil
	case CustomLoss:
		if custom == nil {
			return 0, &StateError{Op: "Predict", Reason: "custom loss selected but no loss function set"}
		}
		return minimiseExpectedLoss(d, custom), nil
	}
	return 0, &ArgumentError{Arg: "loss", Reason: "unknown loss function"}
}

// minimiseExpectedLoss returns the label with the smallest expected loss
// under the distribution. Ties resolve to the smallest label.
func minimiseExpectedLoss(d dist.Discrete, loss LossFunc) int {
	best := 0
	bestExpected := math.Inf(1)
	for estimate := 0; estimate < d.Dimension(); estimate++ {
		var expected float64
		for truth := 0; truth < d.Dimension(); truth++ {
			expected += d.Prob(truth) * loss(estimate, truth)
		}
		if expected < bestExpected {
			bestExpected = expected
			best = estimate
		}
	}
	return best
}
