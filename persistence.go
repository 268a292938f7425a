package bayespoint

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hscells/bayespoint/data"
	"github.com/hscells/bayespoint/dist"
	"github.com/hscells/bayespoint/serial"
	"github.com/pkg/errors"
)

// snapshot captures the serializable state of the classifier: frozen
// settings, phase, the posterior when present, and evidence when present and
// still valid. The mapping's caller-side data source is never captured.
func (c *Classifier) snapshot() *serial.State {
	s := &serial.State{
		Phase:                uint8(c.phase),
		Multiclass:           c.caps.Multiclass,
		GaussianPrior:        c.caps.GaussianPrior,
		IterationCount:       int32(c.settings.Training.IterationCount()),
		BatchCount:           int32(c.settings.Training.BatchCount()),
		ComputeModelEvidence: c.settings.Training.ComputeModelEvidence(),
		WeightPriorVariance:  c.settings.Training.WeightPriorVariance(),
		Loss:                 uint8(c.settings.Prediction.LossFunction()),
		PredictionIterations: int32(c.settings.Prediction.IterationCount()),
		Sparse:               c.sparse,
		ClassCount:           int32(c.classCount),
		FeatureCount:         int32(c.featureCount),
	}
	if c.posterior != nil {
		s.HasPosterior = true
		s.Means = make([][]float64, len(c.posterior))
		s.Variances = make([][]float64, len(c.posterior))
		for i, row := range c.posterior {
			s.Means[i] = make([]float64, len(row))
			s.Variances[i] = make([]float64, len(row))
			for j, g := range row {
				s.Means[i][j] = g.Mean
				s.Variances[i][j] = g.Variance
			}
		}
	}
	if c.evidenceValid {
		s.HasEvidence = true
		s.LogEvidence = c.evidence
	}
	return s
}

func restore(m data.Mapping, s *serial.State) (*Classifier, error) {
	c, err := newClassifier(m, capabilitiesFor(s.Multiclass, s.GaussianPrior), formatIDFor(s.Multiclass, s.GaussianPrior))
	if err != nil {
		return nil, err
	}
	c.settings.Training.iterationCount = int(s.IterationCount)
	c.settings.Training.batchCount = int(s.BatchCount)
	c.settings.Training.computeModelEvidence = s.ComputeModelEvidence
	c.settings.Training.weightPriorVariance = s.WeightPriorVariance
	c.settings.Prediction.loss = Loss(s.Loss)
	c.settings.Prediction.iterationCount = int(s.PredictionIterations)
	c.phase = Phase(s.Phase)
	if c.phase != Untrained {
		c.settings.freeze()
	}
	c.sparse = s.Sparse
	c.classCount = int(s.ClassCount)
	c.featureCount = int(s.FeatureCount)
	if s.HasPosterior {
		if len(s.Variances) != len(s.Means) {
			return nil, errors.New("artifact posterior means and variances disagree")
		}
		posterior := make(WeightPosterior, len(s.Means))
		for i, means := range s.Means {
			if len(s.Variances[i]) != len(means) {
				return nil, errors.New("artifact posterior means and variances disagree")
			}
			posterior[i] = make([]dist.Gaussian, len(means))
			for j, mean := range means {
				posterior[i][j] = dist.NewGaussian(mean, s.Variances[i][j])
			}
		}
		c.posterior = posterior
	}
	if s.HasEvidence {
		c.evidence = s.LogEvidence
		c.evidenceValid = true
	}
	return c, nil
}

func formatIDFor(multiclass, gaussianPrior bool) uuid.UUID {
	switch {
	case multiclass && gaussianPrior:
		return serial.GaussianMulticlassClassifierID
	case multiclass:
		return serial.MulticlassClassifierID
	case gaussianPrior:
		return serial.GaussianBinaryClassifierID
	}
	return serial.BinaryClassifierID
}

// Save writes the classifier in the backward-compatible versioned format.
func (c *Classifier) Save(w io.Writer) error {
	if w == nil {
		return &ArgumentError{Arg: "w", Reason: "must not be nil"}
	}
	return serial.Write(w, c.formatID, c.snapshot())
}

// SaveFile writes the classifier in the versioned format to a file, closing
// it even on failure.
func (c *Classifier) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create model file")
	}
	defer f.Close()
	if err := c.Save(f); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "close model file")
}

// Dump writes the classifier alone as a forward-compatible self-describing
// dump, readable only by the exact code version that wrote it.
func (c *Classifier) Dump(w io.Writer) error {
	if w == nil {
		return &ArgumentError{Arg: "w", Reason: "must not be nil"}
	}
	return serial.Dump(w, c.snapshot())
}

// DumpWithMapping writes mapping bytes followed by classifier bytes on one
// dump stream. The mapping's concrete type must be registered with gob.
func (c *Classifier) DumpWithMapping(w io.Writer) error {
	if w == nil {
		return &ArgumentError{Arg: "w", Reason: "must not be nil"}
	}
	return serial.DumpWithMapping(w, c.mapping, c.snapshot())
}

// Load reads a classifier saved in the versioned format behind any of the
// known format identifiers and binds it to the given mapping.
func Load(r io.Reader, m data.Mapping) (*Classifier, error) {
	if m == nil {
		return nil, &ArgumentError{Arg: "mapping", Reason: "must not be nil"}
	}
	s, _, err := serial.ReadAny(r)
	if err != nil {
		return nil, err
	}
	return restore(m, s)
}

// LoadFile reads a classifier saved with SaveFile.
func LoadFile(path string, m data.Mapping) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open model file")
	}
	defer f.Close()
	return Load(f, m)
}

// LoadBinaryClassifier reads a binary compound-prior classifier, failing
// with a serial.VersionError if the stream holds any other artifact type.
func LoadBinaryClassifier(r io.Reader, m data.Mapping) (*Classifier, error) {
	return load(r, m, serial.BinaryClassifierID)
}

// LoadMulticlassClassifier reads a multi-class compound-prior classifier.
func LoadMulticlassClassifier(r io.Reader, m data.Mapping) (*Classifier, error) {
	return load(r, m, serial.MulticlassClassifierID)
}

// LoadGaussianBinaryClassifier reads a binary Gaussian-prior classifier.
func LoadGaussianBinaryClassifier(r io.Reader, m data.Mapping) (*Classifier, error) {
	return load(r, m, serial.GaussianBinaryClassifierID)
}

// LoadGaussianMulticlassClassifier reads a multi-class Gaussian-prior
// classifier.
func LoadGaussianMulticlassClassifier(r io.Reader, m data.Mapping) (*Classifier, error) {
	return load(r, m, serial.GaussianMulticlassClassifierID)
}

func load(r io.Reader, m data.Mapping, id uuid.UUID) (*Classifier, error) {
	if m == nil {
		return nil, &ArgumentError{Arg: "mapping", Reason: "must not be nil"}
	}
	s, err := serial.Read(r, id)
	if err != nil {
		return nil, err
	}
	return restore(m, s)
}

// Undump reads a classifier written by Dump and binds it to the given
// mapping.
func Undump(r io.Reader, m data.Mapping) (*Classifier, error) {
	if m == nil {
		return nil, &ArgumentError{Arg: "mapping", Reason: "must not be nil"}
	}
	s, err := serial.Undump(r)
	if err != nil {
		return nil, err
	}
	return restore(m, s)
}

// UndumpWithMapping reads a mapping and classifier written by
// DumpWithMapping, in the same order.
func UndumpWithMapping(r io.Reader) (*Classifier, error) {
	m, s, err := serial.UndumpWithMapping(r)
	if err != nil {
		return nil, err
	}
	return restore(m, s)
}
