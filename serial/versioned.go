package serial

import (
	"encoding/binary"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// header carries the fixed-size payload fields of the versioned format, in
// declaration order. Reordering these fields is a format break.
type header struct {
	Phase                uint8
	Multiclass           bool
	GaussianPrior        bool
	Sparse               bool
	IterationCount       int32
	BatchCount           int32
	ComputeModelEvidence bool
	WeightPriorVariance  float64
	Loss                 uint8
	PredictionIterations int32
	ClassCount           int32
	FeatureCount         int32
	HasPosterior         bool
	HasEvidence          bool
	LogEvidence          float64
}

// Write encodes a snapshot in the versioned format: the 16-byte format
// identifier, the payload version, then the payload.
func Write(w io.Writer, id uuid.UUID, s *State) error {
	if s == nil {
		return errors.New("serial: nil state")
	}
	if _, err := w.Write(id[:]); err != nil {
		return errors.Wrap(err, "write format identifier")
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return errors.Wrap(err, "write version")
	}
	h := header{
		Phase:                s.Phase,
		Multiclass:           s.Multiclass,
		GaussianPrior:        s.GaussianPrior,
		Sparse:               s.Sparse,
		IterationCount:       s.IterationCount,
		BatchCount:           s.BatchCount,
		ComputeModelEvidence: s.ComputeModelEvidence,
		WeightPriorVariance:  s.WeightPriorVariance,
		Loss:                 s.Loss,
		PredictionIterations: s.PredictionIterations,
		ClassCount:           s.ClassCount,
		FeatureCount:         s.FeatureCount,
		HasPosterior:         s.HasPosterior,
		HasEvidence:          s.HasEvidence,
		LogEvidence:          s.LogEvidence,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "write payload header")
	}
	if s.HasPosterior {
		if err := writeGrid(w, s.Means); err != nil {
			return errors.Wrap(err, "write posterior means")
		}
		if err := writeGrid(w, s.Variances); err != nil {
			return errors.Wrap(err, "write posterior variances")
		}
	}
	return nil
}

// Read decodes a snapshot written by Write. The format identifier is checked
// before any payload byte: a foreign identifier or an unsupported version
// fails with a VersionError.
func Read(r io.Reader, id uuid.UUID) (*State, error) {
	got, version, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, &VersionError{Got: got, Want: id, Version: version}
	}
	if version < 1 || version > Version {
		return nil, &VersionError{Got: got, Want: id, Version: version}
	}
	return readPayload(r)
}

// ReadAny decodes a snapshot behind any known format identifier, returning
// the identifier found on the stream.
func ReadAny(r io.Reader) (*State, uuid.UUID, error) {
	got, version, err := readFrame(r)
	if err != nil {
		return nil, uuid.UUID{}, err
	}
	known := got == BinaryClassifierID ||
		got == MulticlassClassifierID ||
		got == GaussianBinaryClassifierID ||
		got == GaussianMulticlassClassifierID
	if !known {
		return nil, uuid.UUID{}, &VersionError{Got: got, Version: version}
	}
	if version < 1 || version > Version {
		return nil, uuid.UUID{}, &VersionError{Got: got, Want: got, Version: version}
	}
	s, err := readPayload(r)
	if err != nil {
		return nil, uuid.UUID{}, err
	}
	return s, got, nil
}

func readFrame(r io.Reader) (uuid.UUID, int32, error) {
	var raw [16]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return uuid.UUID{}, 0, errors.Wrap(err, "read format identifier")
	}
	got, err := uuid.FromBytes(raw[:])
	if err != nil {
		return uuid.UUID{}, 0, errors.Wrap(err, "parse format identifier")
	}
	var version int32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return uuid.UUID{}, 0, errors.Wrap(err, "read version")
	}
	return got, version, nil
}

func readPayload(r io.Reader) (*State, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "read payload header")
	}
	s := &State{
		Phase:                h.Phase,
		Multiclass:           h.Multiclass,
		GaussianPrior:        h.GaussianPrior,
		Sparse:               h.Sparse,
		IterationCount:       h.IterationCount,
		BatchCount:           h.BatchCount,
		ComputeModelEvidence: h.ComputeModelEvidence,
		WeightPriorVariance:  h.WeightPriorVariance,
		Loss:                 h.Loss,
		PredictionIterations: h.PredictionIterations,
		ClassCount:           h.ClassCount,
		FeatureCount:         h.FeatureCount,
		HasPosterior:         h.HasPosterior,
		HasEvidence:          h.HasEvidence,
		LogEvidence:          h.LogEvidence,
	}
	if s.HasPosterior {
		var err error
		if s.Means, err = readGrid(r); err != nil {
			return nil, errors.Wrap(err, "read posterior means")
		}
		if s.Variances, err = readGrid(r); err != nil {
			return nil, errors.Wrap(err, "read posterior variances")
		}
	}
	return s, nil
}

func writeGrid(w io.Writer, grid [][]float64) error {
	rows := int32(len(grid))
	var cols int32
	if rows > 0 {
		cols = int32(len(grid[0]))
	}
	if err := binary.Write(w, binary.LittleEndian, rows); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, cols); err != nil {
		return err
	}
	for _, row := range grid {
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return err
		}
	}
	return nil
}

func readGrid(r io.Reader) ([][]float64, error) {
	var rows, cols int32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return nil, err
	}
	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("invalid grid shape %dx%d", rows, cols)
	}
	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = make([]float64, cols)
		if err := binary.Read(r, binary.LittleEndian, grid[i]); err != nil {
			return nil, err
		}
	}
	return grid, nil
}
