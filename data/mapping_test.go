package data

import (
	"math"
	"reflect"
	"testing"
)

func TestDenseMappingBatches(t *testing.T) {
	source := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	labels := []int{0, 1, 1}
	m := DenseMapping{}

	sparse, err := m.IsSparse(source)
	if err != nil || sparse {
		t.Fatalf("expected a dense source, got sparse=%v err=%v", sparse, err)
	}
	fc, err := m.FeatureCount(source)
	if err != nil || fc != 2 {
		t.Fatalf("expected 2 features, got %d (%v)", fc, err)
	}
	cc, err := m.ClassCount(source, labels)
	if err != nil || cc != 2 {
		t.Fatalf("expected 2 classes, got %d (%v)", cc, err)
	}

	values, err := m.FeatureValues(source, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, [][]float64{{1, 0}, {0, 1}}) {
		t.Fatalf("unexpected first batch: %v", values)
	}
	got, err := m.Labels(source, labels, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("unexpected second batch labels: %v", got)
	}
}

func TestDenseMappingIsIdempotent(t *testing.T) {
	source := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	m := DenseMapping{}
	first, err := m.FeatureValues(source, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A different batch count in between must not disturb repeated calls.
	if _, err := m.FeatureValues(source, 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.FeatureValues(source, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated call differs: %v vs %v", first, second)
	}
}

func TestDenseMappingFaults(t *testing.T) {
	m := DenseMapping{}
	cases := []struct {
		name   string
		source interface{}
		labels interface{}
	}{
		{"nil source", nil, []int{0}},
		{"wrong source type", "instances", []int{0}},
		{"ragged rows", [][]float64{{1, 2}, {3}}, []int{0, 1}},
		{"non-finite value", [][]float64{{1, math.NaN()}}, []int{0}},
		{"label mismatch", [][]float64{{1, 2}}, []int{0, 1}},
		{"negative label", [][]float64{{1, 2}}, []int{-1}},
	}
	for _, c := range cases {
		var err error
		if _, err = m.FeatureValues(c.source, 0, 1); err == nil {
			_, err = m.Labels(c.source, c.labels, 0, 1)
		}
		if err == nil {
			t.Fatalf("%s: expected a mapping fault", c.name)
		}
		if _, ok := err.(*MappingError); !ok {
			t.Fatalf("%s: expected a MappingError, got %T", c.name, err)
		}
	}
}

func TestSparseMappingBatches(t *testing.T) {
	source := &SparseInstances{
		Values:       [][]float64{{1}, {2, 3}, {4}},
		Indexes:      [][]int{{0}, {0, 2}, {1}},
		FeatureCount: 3,
	}
	labels := []int{0, 1, 2}
	m := SparseMapping{}

	sparse, err := m.IsSparse(source)
	if err != nil || !sparse {
		t.Fatalf("expected a sparse source, got sparse=%v err=%v", sparse, err)
	}
	fc, err := m.FeatureCount(source)
	if err != nil || fc != 3 {
		t.Fatalf("expected 3 features, got %d (%v)", fc, err)
	}
	cc, err := m.ClassCount(source, labels)
	if err != nil || cc != 3 {
		t.Fatalf("expected 3 classes, got %d (%v)", cc, err)
	}

	indexes, err := m.FeatureIndexes(source, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(indexes, [][]int{{1}}) {
		t.Fatalf("unexpected second batch indexes: %v", indexes)
	}
}

func TestSparseMappingRejectsOutOfRangeIndexes(t *testing.T) {
	source := &SparseInstances{
		Values:       [][]float64{{1}},
		Indexes:      [][]int{{5}},
		FeatureCount: 3,
	}
	m := SparseMapping{}
	if _, err := m.FeatureIndexes(source, 0, 1); err == nil {
		t.Fatal("expected a mapping fault")
	} else if _, ok := err.(*MappingError); !ok {
		t.Fatalf("expected a MappingError, got %T", err)
	}
}

func TestKeyedMappingVectorises(t *testing.T) {
	instances := []map[string]float64{
		{"colour": 1, "shape": 2},
		{"shape": 3},
		{"colour": 4, "size": 5},
	}
	m, err := NewKeyedMapping(instances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Vocabulary is sorted and unique.
	if !reflect.DeepEqual(m.Features, []string{"colour", "shape", "size"}) {
		t.Fatalf("unexpected vocabulary: %v", m.Features)
	}

	values, err := m.FeatureValues(instances, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	indexes, err := m.FeatureIndexes(instances, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, [][]float64{{1, 2}, {3}, {4, 5}}) {
		t.Fatalf("unexpected values: %v", values)
	}
	if !reflect.DeepEqual(indexes, [][]int{{0, 1}, {1}, {0, 2}}) {
		t.Fatalf("unexpected indexes: %v", indexes)
	}
}

func TestKeyedMappingIgnoresUnknownFeatures(t *testing.T) {
	m, err := NewKeyedMapping([]map[string]float64{{"a": 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, err := m.FeatureValues([]map[string]float64{{"a": 2, "b": 9}}, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(values, [][]float64{{2}}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestMappingBatchCountExceedsInstances(t *testing.T) {
	source := [][]float64{{1}, {2}, {3}}
	_, err := DenseMapping{}.FeatureValues(source, 0, 4)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*BatchCountError); !ok {
		t.Fatalf("expected a BatchCountError, got %T", err)
	}
}
