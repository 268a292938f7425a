package bayespoint

import "math"

// Settings is the nested training and prediction configuration owned by one
// classifier. All mutation is routed through checked setters; once the
// classifier has trained, ComputeModelEvidence and WeightPriorVariance are
// frozen permanently while the remaining settings stay mutable.
type Settings struct {
	Training   *TrainingSettings
	Prediction *PredictionSettings
}

func newSettings(caps Capabilities) *Settings {
	return &Settings{
		Training: &TrainingSettings{
			caps:                caps,
			iterationCount:      30,
			batchCount:          1,
			weightPriorVariance: 1,
		},
		Prediction: &PredictionSettings{
			caps:           caps,
			loss:           ZeroOneLoss,
			iterationCount: 10,
		},
	}
}

func (s *Settings) freeze() {
	s.Training.frozen = true
}

// TrainingSettings holds the training configuration of a classifier.
type TrainingSettings struct {
	caps Capabilities

	iterationCount       int
	batchCount           int
	computeModelEvidence bool
	weightPriorVariance  float64
	frozen               bool
}

// IterationCount returns the number of refinement iterations per training
// call.
func (s *TrainingSettings) IterationCount() int {
	return s.iterationCount
}

// SetIterationCount sets the number of refinement iterations. It remains
// mutable after training.
func (s *TrainingSettings) SetIterationCount(n int) error {
	if n < 1 {
		return &ArgumentError{Arg: "iterationCount", Reason: "must be at least 1"}
	}
	s.iterationCount = n
	return nil
}

// BatchCount returns the number of contiguous batches the training data is
// split into.
func (s *TrainingSettings) BatchCount() int {
	return s.batchCount
}

// SetBatchCount sets the number of training batches. It remains mutable
// after training.
func (s *TrainingSettings) SetBatchCount(n int) error {
	if n < 1 {
		return &ArgumentError{Arg: "batchCount", Reason: "must be at least 1"}
	}
	s.batchCount = n
	return nil
}

// ComputeModelEvidence reports whether training records the log model
// evidence.
func (s *TrainingSettings) ComputeModelEvidence() bool {
	return s.computeModelEvidence
}

// SetComputeModelEvidence enables or disables evidence computation. It
// freezes permanently on the first training call.
func (s *TrainingSettings) SetComputeModelEvidence(compute bool) error {
	if s.frozen {
		return &StateError{Op: "SetComputeModelEvidence", Reason: "setting is frozen once training has started"}
	}
	s.computeModelEvidence = compute
	return nil
}

// WeightPriorVariance returns the variance of the Gaussian weight prior.
func (s *TrainingSettings) WeightPriorVariance() float64 {
	return s.weightPriorVariance
}

// SetWeightPriorVariance sets the Gaussian weight prior variance. It is only
// available on Gaussian-prior variants and freezes permanently on the first
// training call.
func (s *TrainingSettings) SetWeightPriorVariance(variance float64) error {
	if !s.caps.GaussianPrior {
		return &ArgumentError{Arg: "weightPriorVariance", Reason: "classifier has no Gaussian weight prior"}
	}
	if s.frozen {
		return &StateError{Op: "SetWeightPriorVariance", Reason: "setting is frozen once training has started"}
	}
	if variance <= 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return &ArgumentError{Arg: "weightPriorVariance", Reason: "must be finite and positive"}
	}
	s.weightPriorVariance = variance
	return nil
}

// PredictionSettings holds the prediction configuration of a classifier. All
// prediction settings remain mutable after training.
type PredictionSettings struct {
	caps Capabilities

	loss           Loss
	customLoss     LossFunc
	iterationCount int
}

// LossFunction returns the configured loss function selector.
func (s *PredictionSettings) LossFunction() Loss {
	return s.loss
}

// SetLossFunction selects one of the built-in loss functions. Selecting
// CustomLoss requires SetCustomLossFunction instead.
func (s *PredictionSettings) SetLossFunction(loss Loss) error {
	switch loss {
	case ZeroOneLoss, SquaredLoss, AbsoluteLoss:
		s.loss = loss
		return nil
	case CustomLoss:
		return &ArgumentError{Arg: "loss", Reason: "set a custom loss through SetCustomLossFunction"}
	}
	return &ArgumentError{Arg: "loss", Reason: "unknown loss function"}
}

// SetCustomLossFunction selects CustomLoss with the given loss.
func (s *PredictionSettings) SetCustomLossFunction(f LossFunc) error {
	if f == nil {
		return &ArgumentError{Arg: "lossFunction", Reason: "must not be nil"}
	}
	if !s.caps.SupportsCustomLossFunction {
		return &ArgumentError{Arg: "lossFunction", Reason: "classifier does not support custom losses"}
	}
	s.loss = CustomLoss
	s.customLoss = f
	return nil
}

// IterationCount returns the number of decoding passes used by multi-class
// prediction.
func (s *PredictionSettings) IterationCount() int {
	return s.iterationCount
}

// SetIterationCount sets the number of decoding passes used by multi-class
// prediction.
func (s *PredictionSettings) SetIterationCount(n int) error {
	if n < 1 {
		return &ArgumentError{Arg: "predictionIterationCount", Reason: "must be at least 1"}
	}
	s.iterationCount = n
	return nil
}
