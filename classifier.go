// Package bayespoint implements the lifecycle of Bayes point machine
// classifiers: training, incremental training, batched training, prediction,
// evidence reporting and durable persistence over a pluggable data mapping
// and an opaque inference engine. Four variants share one lifecycle: binary
// and multi-class label cardinalities, each with a compound or a Gaussian
// weight prior.
package bayespoint

import (
	"github.com/google/uuid"
	"github.com/hscells/bayespoint/data"
	"github.com/hscells/bayespoint/dist"
	"github.com/hscells/bayespoint/infer"
	"github.com/hscells/bayespoint/serial"
)

// Classifier is a Bayes point machine classifier bound to one mapping for the
// lifetime of the instance. A classifier is a single-writer resource: it is
// not safe for concurrent training or prediction.
type Classifier struct {
	mapping  data.Mapping
	engine   InferenceEngine
	settings *Settings
	caps     Capabilities
	formatID uuid.UUID

	phase         Phase
	sparse        bool
	classCount    int
	featureCount  int
	posterior     WeightPosterior
	evidence      float64
	evidenceValid bool
	observers     []ProgressFunc
}

// NewBinaryClassifier creates an untrained two-class classifier with a
// compound weight prior, bound to the given mapping.
func NewBinaryClassifier(m data.Mapping) (*Classifier, error) {
	return newClassifier(m, capabilitiesFor(false, false), serial.BinaryClassifierID)
}

// NewMulticlassClassifier creates an untrained multi-class classifier with a
// compound weight prior, bound to the given mapping.
func NewMulticlassClassifier(m data.Mapping) (*Classifier, error) {
	return newClassifier(m, capabilitiesFor(true, false), serial.MulticlassClassifierID)
}

// NewGaussianBinaryClassifier creates an untrained two-class classifier with
// a Gaussian weight prior, bound to the given mapping.
func NewGaussianBinaryClassifier(m data.Mapping) (*Classifier, error) {
	return newClassifier(m, capabilitiesFor(false, true), serial.GaussianBinaryClassifierID)
}

// NewGaussianMulticlassClassifier creates an untrained multi-class classifier
// with a Gaussian weight prior, bound to the given mapping.
func NewGaussianMulticlassClassifier(m data.Mapping) (*Classifier, error) {
	return newClassifier(m, capabilitiesFor(true, true), serial.GaussianMulticlassClassifierID)
}

func newClassifier(m data.Mapping, caps Capabilities, formatID uuid.UUID) (*Classifier, error) {
	if m == nil {
		return nil, &ArgumentError{Arg: "mapping", Reason: "must not be nil"}
	}
	return &Classifier{
		mapping:  m,
		engine:   infer.New(),
		settings: newSettings(caps),
		caps:     caps,
		formatID: formatID,
	}, nil
}

// SetInferenceEngine replaces the inference engine of an untrained
// classifier.
func (c *Classifier) SetInferenceEngine(e InferenceEngine) error {
	if e == nil {
		return &ArgumentError{Arg: "engine", Reason: "must not be nil"}
	}
	if c.phase != Untrained {
		return &StateError{Op: "SetInferenceEngine", Reason: "engine is fixed once training has started"}
	}
	c.engine = e
	return nil
}

// Mapping returns the mapping the classifier was constructed with.
func (c *Classifier) Mapping() data.Mapping {
	return c.mapping
}

// Capabilities returns the static capability flags of this variant.
func (c *Classifier) Capabilities() Capabilities {
	return c.caps
}

// Settings returns the mutable settings of the classifier.
func (c *Classifier) Settings() *Settings {
	return c.settings
}

// Phase returns the current lifecycle phase.
func (c *Classifier) Phase() Phase {
	return c.phase
}

// WeightPosteriorDistributions returns the classCount x featureCount grid of
// Gaussian weight marginals. It fails with a StateError before training.
func (c *Classifier) WeightPosteriorDistributions() (WeightPosterior, error) {
	if c.phase == Untrained {
		return nil, &StateError{Op: "WeightPosteriorDistributions", Reason: "classifier has not been trained"}
	}
	return c.posterior, nil
}

// LogModelEvidence returns the log model evidence of a single non-incremental
// training pass. It fails with a StateError before training, when evidence
// computation was not enabled, or after any incremental training call.
func (c *Classifier) LogModelEvidence() (float64, error) {
	if c.phase == Untrained {
		return 0, &StateError{Op: "LogModelEvidence", Reason: "classifier has not been trained"}
	}
	if !c.settings.Training.ComputeModelEvidence() {
		return 0, &StateError{Op: "LogModelEvidence", Reason: "evidence computation was not enabled before training"}
	}
	if !c.evidenceValid {
		return 0, &StateError{Op: "LogModelEvidence", Reason: "evidence is invalid after incremental training"}
	}
	return c.evidence, nil
}

// Train performs the single permitted batch training pass over the instance
// source. Calling it on any non-untrained classifier fails with a
// StateError.
func (c *Classifier) Train(source, labelSource interface{}) error {
	if source == nil {
		return &ArgumentError{Arg: "source", Reason: "must not be nil"}
	}
	if c.phase != Untrained {
		return &StateError{Op: "Train", Reason: "training is single-use; use TrainIncremental to continue"}
	}
	posterior, evidence, err := c.runTraining(source, labelSource, nil)
	if err != nil {
		return err
	}
	c.posterior = posterior
	c.phase = Trained
	c.settings.freeze()
	if c.settings.Training.ComputeModelEvidence() {
		c.evidence = evidence
		c.evidenceValid = true
	}
	return nil
}

// TrainIncremental refines the weight posterior with additional data. It is
// valid from any phase: on an untrained classifier it is the first training
// pass. A rejected call leaves the posterior, phase and evidence untouched.
func (c *Classifier) TrainIncremental(source, labelSource interface{}) error {
	if source == nil {
		return &ArgumentError{Arg: "source", Reason: "must not be nil"}
	}
	posterior, _, err := c.runTraining(source, labelSource, c.posterior)
	if err != nil {
		return err
	}
	c.posterior = posterior
	c.phase = IncrementallyTrained
	c.settings.freeze()
	c.evidenceValid = false
	return nil
}

// runTraining resolves the batch count, pulls every batch through the
// mapping, and drives the inference engine for the configured number of
// refinement iterations per batch, firing ordered progress notifications. It
// returns the refined posterior without installing it, so a failed call
// cannot leave a partial update behind.
func (c *Classifier) runTraining(source, labelSource interface{}, prior WeightPosterior) (WeightPosterior, float64, error) {
	sparse, err := c.mapping.IsSparse(source)
	if err != nil {
		return nil, 0, err
	}
	featureCount, err := c.mapping.FeatureCount(source)
	if err != nil {
		return nil, 0, err
	}
	classCount, err := c.mapping.ClassCount(source, labelSource)
	if err != nil {
		return nil, 0, err
	}
	if c.phase == Untrained {
		if err := c.fixDimensions(sparse, featureCount, classCount); err != nil {
			return nil, 0, err
		}
	} else if err := c.checkDimensions(featureCount, classCount); err != nil {
		return nil, 0, err
	}

	iterations := c.settings.Training.IterationCount()
	batchCount := c.settings.Training.BatchCount()
	c.engine.Iterate(iterations)

	posterior := prior
	if posterior == nil {
		posterior = c.initialPosterior()
	}
	var (
		evidence  float64
		completed int
	)
	for b := 0; b < batchCount; b++ {
		batch, err := c.pullTrainingBatch(source, labelSource, b, batchCount)
		if err != nil {
			return nil, 0, err
		}
		for it := 0; it < iterations; it++ {
			posterior, err = c.engine.Accumulate(batch, posterior)
			if err != nil {
				return nil, 0, err
			}
			completed++
			c.notify(completed, posterior)
		}
		evidence += c.engine.LogEvidence()
	}
	return posterior, evidence, nil
}

// fixDimensions pins the feature and class counts on the first training
// call. Binary variants always hold two classes and reject data with more;
// multi-class variants take the class count of the first training data.
func (c *Classifier) fixDimensions(sparse bool, featureCount, classCount int) error {
	if featureCount < 1 {
		return data.Batchf("training data has no features")
	}
	if c.caps.Multiclass {
		if classCount < 2 {
			return data.Batchf("multi-class training data must cover at least two classes, got %d", classCount)
		}
		c.classCount = classCount
	} else {
		if classCount > 2 {
			return data.Batchf("binary classifier cannot train on %d classes", classCount)
		}
		c.classCount = 2
	}
	c.sparse = sparse
	c.featureCount = featureCount
	return nil
}

// checkDimensions enforces the incremental-training compatibility rule
// before any posterior mutation: the feature count must match exactly and no
// label may fall outside the fixed class range.
func (c *Classifier) checkDimensions(featureCount, classCount int) error {
	if featureCount != c.featureCount {
		return data.Batchf("batch has %d features, classifier is fixed to %d", featureCount, c.featureCount)
	}
	if classCount > c.classCount {
		return data.Batchf("batch covers %d classes, classifier is fixed to %d", classCount, c.classCount)
	}
	return nil
}

func (c *Classifier) initialPosterior() WeightPosterior {
	variance := 1.0
	if c.caps.GaussianPrior {
		variance = c.settings.Training.WeightPriorVariance()
	}
	return dist.NewGaussianMatrix(c.classCount, c.featureCount, dist.NewGaussian(0, variance))
}

func (c *Classifier) pullTrainingBatch(source, labelSource interface{}, batch, batchCount int) (*data.Batch, error) {
	values, err := c.mapping.FeatureValues(source, batch, batchCount)
	if err != nil {
		return nil, err
	}
	var indexes [][]int
	if c.sparse {
		if indexes, err = c.mapping.FeatureIndexes(source, batch, batchCount); err != nil {
			return nil, err
		}
	}
	labels, err := c.mapping.Labels(source, labelSource, batch, batchCount)
	if err != nil {
		return nil, err
	}
	b := &data.Batch{
		FeatureValues:  values,
		FeatureIndexes: indexes,
		Labels:         labels,
		FeatureCount:   c.featureCount,
		ClassCount:     c.classCount,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// PredictDistribution returns the posterior label distribution for every
// instance in the source. Labels are never requested from the mapping.
func (c *Classifier) PredictDistribution(source interface{}) ([]dist.Discrete, error) {
	if source == nil {
		return nil, &ArgumentError{Arg: "source", Reason: "must not be nil"}
	}
	if c.phase == Untrained {
		return nil, &StateError{Op: "PredictDistribution", Reason: "classifier has not been trained"}
	}
	batch, err := c.pullPredictionBatch(source)
	if err != nil {
		return nil, err
	}
	if c.caps.Multiclass {
		c.engine.Iterate(c.settings.Prediction.IterationCount())
	} else {
		c.engine.Iterate(1)
	}
	return c.engine.LabelMarginals(batch, c.posterior)
}

// PredictDistributionAt returns the posterior label distribution of the
// instance at the given index in the source.
func (c *Classifier) PredictDistributionAt(source interface{}, instance int) (dist.Discrete, error) {
	if instance < 0 {
		return dist.Discrete{}, &ArgumentError{Arg: "instance", Reason: "must not be negative"}
	}
	dists, err := c.PredictDistribution(source)
	if err != nil {
		return dist.Discrete{}, err
	}
	if instance >= len(dists) {
		return dist.Discrete{}, &ArgumentError{Arg: "instance", Reason: "outside the instance source"}
	}
	return dists[instance], nil
}

// Predict returns a Bayes-optimal point estimate for every instance in the
// source under the configured loss function.
func (c *Classifier) Predict(source interface{}) ([]int, error) {
	dists, err := c.PredictDistribution(source)
	if err != nil {
		return nil, err
	}
	loss := c.settings.Prediction.LossFunction()
	custom := c.settings.Prediction.customLoss
	labels := make([]int, len(dists))
	for i, d := range dists {
		if labels[i], err = pointEstimate(d, loss, custom); err != nil {
			return nil, err
		}
	}
	return labels, nil
}

// PredictAt returns the point estimate of the instance at the given index in
// the source.
func (c *Classifier) PredictAt(source interface{}, instance int) (int, error) {
	d, err := c.PredictDistributionAt(source, instance)
	if err != nil {
		return 0, err
	}
	return pointEstimate(d, c.settings.Prediction.LossFunction(), c.settings.Prediction.customLoss)
}

func (c *Classifier) pullPredictionBatch(source interface{}) (*data.Batch, error) {
	values, err := c.mapping.FeatureValues(source, 0, 1)
	if err != nil {
		return nil, err
	}
	var indexes [][]int
	if c.sparse {
		if indexes, err = c.mapping.FeatureIndexes(source, 0, 1); err != nil {
			return nil, err
		}
	}
	b := &data.Batch{
		FeatureValues:  values,
		FeatureIndexes: indexes,
		FeatureCount:   c.featureCount,
		ClassCount:     c.classCount,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
