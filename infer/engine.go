// Package infer provides a reference inference engine for the Bayes point
// machine classifiers. It refines fully factorised Gaussian weight marginals
// with assumed-density filtering over a probit likelihood, one one-vs-rest
// weight row per class, and is fully deterministic: the same batches in the
// same order always produce the same posterior. The lifecycle treats it as an
// opaque collaborator behind the engine boundary.
package infer

import (
	"math"

	"github.com/hscells/bayespoint/data"
	"github.com/hscells/bayespoint/dist"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// floors guarding the probit moment updates against degenerate marginals.
const (
	minProb     = 1e-12
	minShrink   = 1e-6
	minVariance = 1e-12
)

// Engine refines Gaussian weight grids one sweep per Accumulate call.
type Engine struct {
	// noise is the additive variance on activations, fixing the scale of the
	// probit likelihood.
	noise float64
	// sweeps is the total sweep budget announced through Iterate. The
	// reference engine runs undamped and keeps it for engines that do not.
	sweeps   int
	evidence float64
}

// New creates a reference engine with unit activation noise.
func New() *Engine {
	return &Engine{noise: 1, sweeps: 1}
}

// Iterate records the total refinement sweep budget.
func (e *Engine) Iterate(count int) {
	if count > 0 {
		e.sweeps = count
	}
}

// Accumulate runs one assumed-density filtering sweep over the batch,
// starting from the given prior grid, and returns a fresh refined grid. The
// prior is never modified.
func (e *Engine) Accumulate(batch *data.Batch, prior dist.GaussianMatrix) (dist.GaussianMatrix, error) {
	if batch == nil {
		return nil, errors.New("infer: nil batch")
	}
	if len(prior) != batch.ClassCount {
		return nil, errors.Errorf("infer: prior has %d rows for %d classes", len(prior), batch.ClassCount)
	}
	if batch.Labels == nil {
		return nil, errors.New("infer: training batch carries no labels")
	}
	posterior := prior.Clone()
	var evidence float64
	for i := range batch.FeatureValues {
		values := batch.FeatureValues[i]
		indexes := e.rowIndexes(batch, i)
		label := batch.Labels[i]
		for k := range posterior {
			target := -1.0
			if k == label {
				target = 1.0
			}
			evidence += e.filter(posterior[k], values, indexes, target)
		}
	}
	e.evidence = evidence
	return posterior, nil
}

// filter folds one instance into one weight row with a probit ADF update and
// returns its log evidence contribution.
func (e *Engine) filter(row []dist.Gaussian, values []float64, indexes []int, target float64) float64 {
	mean, variance := activationMoments(row, values, indexes)
	variance += e.noise
	sd := math.Sqrt(variance)
	z := target * mean / sd
	prob := distuv.UnitNormal.CDF(z)
	if prob < minProb {
		prob = minProb
	}
	alpha := distuv.UnitNormal.Prob(z) / prob
	for pos, x := range values {
		j := pos
		if indexes != nil {
			j = indexes[pos]
		}
		g := row[j]
		shrink := 1 - (x*x*g.Variance/variance)*alpha*(alpha+z)
		if shrink < minShrink {
			shrink = minShrink
		}
		v := g.Variance * shrink
		if v < minVariance {
			v = minVariance
		}
		row[j] = dist.NewGaussian(g.Mean+target*x*g.Variance/sd*alpha, v)
	}
	return math.Log(prob)
}

// LabelMarginals computes a posterior label distribution per instance by
// normalising the per-class probit activation probabilities against the
// frozen posterior grid.
func (e *Engine) LabelMarginals(batch *data.Batch, posterior dist.GaussianMatrix) ([]dist.Discrete, error) {
	if batch == nil {
		return nil, errors.New("infer: nil batch")
	}
	if len(posterior) != batch.ClassCount {
		return nil, errors.Errorf("infer: posterior has %d rows for %d classes", len(posterior), batch.ClassCount)
	}
	marginals := make([]dist.Discrete, len(batch.FeatureValues))
	probs := make([]float64, batch.ClassCount)
	for i := range batch.FeatureValues {
		values := batch.FeatureValues[i]
		indexes := e.rowIndexes(batch, i)
		for k, row := range posterior {
			mean, variance := activationMoments(row, values, indexes)
			probs[k] = distuv.UnitNormal.CDF(mean / math.Sqrt(variance+e.noise))
		}
		d, err := dist.NewDiscrete(probs)
		if err != nil {
			// All classes rejected the instance outright.
			d = dist.Uniform(batch.ClassCount)
		}
		marginals[i] = d
	}
	return marginals, nil
}

// LogEvidence returns the log evidence contribution of the most recent
// Accumulate call.
func (e *Engine) LogEvidence() float64 {
	return e.evidence
}

func (e *Engine) rowIndexes(batch *data.Batch, i int) []int {
	if batch.FeatureIndexes == nil {
		return nil
	}
	return batch.FeatureIndexes[i]
}

// activationMoments computes the Gaussian moments of the inner product
// between a weight row and one instance.
func activationMoments(row []dist.Gaussian, values []float64, indexes []int) (mean, variance float64) {
	for pos, x := range values {
		j := pos
		if indexes != nil {
			j = indexes[pos]
		}
		mean += row[j].Mean * x
		variance += row[j].Variance * x * x
	}
	return mean, variance
}
