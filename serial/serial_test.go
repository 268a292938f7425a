package serial

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/hscells/bayespoint/data"
)

func sampleState() *State {
	return &State{
		Phase:                1,
		Multiclass:           true,
		GaussianPrior:        true,
		IterationCount:       12,
		BatchCount:           3,
		ComputeModelEvidence: true,
		WeightPriorVariance:  0.25,
		Loss:                 2,
		PredictionIterations: 5,
		Sparse:               true,
		ClassCount:           3,
		FeatureCount:         2,
		HasPosterior:         true,
		Means:                [][]float64{{0.1, -0.2}, {0.3, 0.4}, {-0.5, 0.6}},
		Variances:            [][]float64{{1, 2}, {3, 4}, {5, 6}},
		HasEvidence:          true,
		LogEvidence:          -17.5,
	}
}

func TestVersionedRoundTrip(t *testing.T) {
	s := sampleState()
	var buf bytes.Buffer
	if err := Write(&buf, GaussianMulticlassClassifierID, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Read(&buf, GaussianMulticlassClassifierID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round trip changed the state: %+v", got)
	}
}

func TestVersionedRoundTripWithoutPosterior(t *testing.T) {
	s := &State{Phase: 0, ClassCount: 2, FeatureCount: 0, IterationCount: 30, BatchCount: 1, WeightPriorVariance: 1, PredictionIterations: 10}
	var buf bytes.Buffer
	if err := Write(&buf, BinaryClassifierID, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Read(&buf, BinaryClassifierID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round trip changed the state: %+v", got)
	}
}

func TestReadRejectsForeignIdentifierBeforeThePayload(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(MulticlassClassifierID[:])
	if err := binary.Write(&buf, binary.LittleEndian, Version); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The payload is garbage; the identifier check must fire first.
	buf.Write([]byte{0xde, 0xad, 0xbe, 0xef})
	_, err := Read(&buf, BinaryClassifierID)
	if err == nil {
		t.Fatal("expected an error")
	}
	ve, ok := err.(*VersionError)
	if !ok {
		t.Fatalf("expected a VersionError, got %T: %v", err, err)
	}
	if ve.Got != MulticlassClassifierID || ve.Want != BinaryClassifierID {
		t.Fatalf("unexpected identifiers on the error: %+v", ve)
	}
}

func TestReadRejectsUnsupportedVersions(t *testing.T) {
	for _, version := range []int32{0, -1, Version + 1} {
		var buf bytes.Buffer
		buf.Write(BinaryClassifierID[:])
		if err := binary.Write(&buf, binary.LittleEndian, version); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := Read(&buf, BinaryClassifierID)
		if err == nil {
			t.Fatalf("version %d: expected an error", version)
		}
		ve, ok := err.(*VersionError)
		if !ok {
			t.Fatalf("version %d: expected a VersionError, got %T", version, err)
		}
		if ve.Version != version {
			t.Fatalf("unexpected version on the error: %+v", ve)
		}
	}
}

func TestReadAnyAcceptsEveryKnownIdentifier(t *testing.T) {
	ids := []uuid.UUID{
		BinaryClassifierID,
		MulticlassClassifierID,
		GaussianBinaryClassifierID,
		GaussianMulticlassClassifierID,
	}
	for _, id := range ids {
		var buf bytes.Buffer
		if err := Write(&buf, id, sampleState()); err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		_, got, err := ReadAny(&buf)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if got != id {
			t.Fatalf("ReadAny returned identifier %s, expected %s", got, id)
		}
	}
}

func TestReadAnyRejectsUnknownIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, uuid.MustParse("00000000-0000-0000-0000-000000000001"), sampleState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := ReadAny(&buf)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*VersionError); !ok {
		t.Fatalf("expected a VersionError, got %T", err)
	}
}

func TestReadFailsOnATruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, BinaryClassifierID, sampleState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()/2])
	if _, err := Read(truncated, BinaryClassifierID); err == nil {
		t.Fatal("expected an error")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	s := sampleState()
	var buf bytes.Buffer
	if err := Dump(&buf, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Undump(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round trip changed the state: %+v", got)
	}
}

func TestDumpWithMappingRoundTrip(t *testing.T) {
	s := sampleState()
	mapping, err := data.NewKeyedMapping([]map[string]float64{
		{"shape": 1, "colour": 2},
		{"shape": 3, "size": 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := DumpWithMapping(&buf, mapping, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got *State
	var m data.Mapping
	m, got, err = UndumpWithMapping(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round trip changed the state: %+v", got)
	}
	keyed, ok := m.(*data.KeyedMapping)
	if !ok {
		t.Fatalf("expected a KeyedMapping, got %T", m)
	}
	if !reflect.DeepEqual(keyed.Features, []string{"colour", "shape", "size"}) {
		t.Fatalf("mapping vocabulary changed on the round trip: %v", keyed.Features)
	}
}

func TestDumpRejectsNilInputs(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, nil); err == nil {
		t.Fatal("expected an error")
	}
	if err := DumpWithMapping(&buf, nil, sampleState()); err == nil {
		t.Fatal("expected an error")
	}
	if err := DumpWithMapping(&buf, data.DenseMapping{}, nil); err == nil {
		t.Fatal("expected an error")
	}
}
