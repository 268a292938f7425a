// Package serial implements the two persistence codecs of the Bayes point
// machine classifiers: a backward-compatible versioned binary format framed
// by a 16-byte format identifier, and a self-describing forward-compatible
// gob dump intended only for exact round-trips by matching code. The two
// codecs share the State snapshot but never share framing.
package serial

import (
	"fmt"

	"github.com/google/uuid"
)

// Format identifiers, one per logical artifact type. The payload field order
// behind an identifier is part of the format and must not change without a
// new identifier.
var (
	BinaryClassifierID             = uuid.MustParse("9e3a164f-64f5-47a8-8cd6-8bc2d4bf0e10")
	MulticlassClassifierID         = uuid.MustParse("13d0a139-6da4-4b92-a052-8889736916b5")
	GaussianBinaryClassifierID     = uuid.MustParse("5a6bf304-1b79-4df5-bd35-2f8e2b4ec3c0")
	GaussianMulticlassClassifierID = uuid.MustParse("54d48ecb-1d34-4b8d-9b22-2d7a8b5e1c6f")
)

// Version is the current payload version of the versioned format. Readers
// accept payloads of any version in [1, Version] behind a matching
// identifier.
const Version int32 = 1

// State is the serializable snapshot shared by both codecs: frozen settings,
// lifecycle phase, the weight posterior when present, and the model evidence
// when present and still valid. The mapping's caller-side data source is
// never part of it.
type State struct {
	Phase                uint8
	Multiclass           bool
	GaussianPrior        bool
	IterationCount       int32
	BatchCount           int32
	ComputeModelEvidence bool
	WeightPriorVariance  float64
	Loss                 uint8
	PredictionIterations int32
	Sparse               bool
	ClassCount           int32
	FeatureCount         int32
	HasPosterior         bool
	Means                [][]float64
	Variances            [][]float64
	HasEvidence          bool
	LogEvidence          float64
}

// VersionError reports a format identifier or version mismatch on load. It is
// raised before any payload byte is interpreted and no partial object is
// returned alongside it.
type VersionError struct {
	Got     uuid.UUID
	Want    uuid.UUID
	Version int32
}

func (e *VersionError) Error() string {
	if e.Got != e.Want {
		return fmt.Sprintf("serial: format identifier %s does not match %s", e.Got, e.Want)
	}
	return fmt.Sprintf("serial: payload version %d not in [1, %d]", e.Version, Version)
}
