package bayespoint

import (
	"github.com/hscells/bayespoint/data"
	"github.com/hscells/bayespoint/dist"
)

// WeightPosterior is the classCount x featureCount grid of per-feature
// Gaussian weight marginals owned by a classifier. It is replaced wholesale
// after each training call and never mutated in place, so a caller that
// captured a reference always observes a consistent snapshot.
type WeightPosterior = dist.GaussianMatrix

// InferenceEngine is the boundary to the approximate-Bayesian-inference
// routine. The classifier never inspects the numerics behind it; it only
// sequences calls and swaps the returned posteriors.
type InferenceEngine interface {
	// Iterate announces the total refinement sweep budget of the calls that
	// follow. Engines may use it to plan damping schedules.
	Iterate(count int)
	// Accumulate folds one native batch into the weight posterior, starting
	// from the given prior marginals, and returns a fresh refined grid.
	Accumulate(batch *data.Batch, prior WeightPosterior) (WeightPosterior, error)
	// LabelMarginals runs one decoding pass against a frozen posterior and
	// returns a label distribution per instance in the batch.
	LabelMarginals(batch *data.Batch, posterior WeightPosterior) ([]dist.Discrete, error)
	// LogEvidence returns the log model evidence contribution of the most
	// recent Accumulate call.
	LogEvidence() float64
}
