package data

import "math"

// Batch is the native columnar representation of a slice of instances:
// per-instance feature values (paired with feature indexes when sparse) and
// integer class labels. Labels are nil for prediction batches.
type Batch struct {
	FeatureValues  [][]float64
	FeatureIndexes [][]int
	Labels         []int
	FeatureCount   int
	ClassCount     int
}

// Sparse reports whether the batch carries explicit feature indexes.
func (b *Batch) Sparse() bool {
	return b.FeatureIndexes != nil
}

// Validate checks the structural invariants of a native batch: consistent
// lengths, per-instance index/value pairing, indexes within the feature
// range, finite feature values, and labels within the class range. It fails
// with a BatchError and never modifies the batch.
func (b *Batch) Validate() error {
	if len(b.FeatureValues) == 0 {
		return Batchf("empty batch")
	}
	if b.Labels != nil && len(b.Labels) != len(b.FeatureValues) {
		return Batchf("%d instances but %d labels", len(b.FeatureValues), len(b.Labels))
	}
	if b.FeatureIndexes != nil && len(b.FeatureIndexes) != len(b.FeatureValues) {
		return Batchf("%d instances but %d index rows", len(b.FeatureValues), len(b.FeatureIndexes))
	}
	for i, row := range b.FeatureValues {
		if b.FeatureIndexes == nil {
			if len(row) != b.FeatureCount {
				return Batchf("instance %d has %d features, expected %d", i, len(row), b.FeatureCount)
			}
		} else {
			idx := b.FeatureIndexes[i]
			if len(idx) != len(row) {
				return Batchf("instance %d has %d values but %d indexes", i, len(row), len(idx))
			}
			for _, j := range idx {
				if j < 0 || j >= b.FeatureCount {
					return Batchf("instance %d references feature %d outside [0, %d)", i, j, b.FeatureCount)
				}
			}
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Batchf("instance %d has non-finite feature value %f", i, v)
			}
		}
	}
	for i, label := range b.Labels {
		if label < 0 || label >= b.ClassCount {
			return Batchf("instance %d has label %d outside [0, %d)", i, label, b.ClassCount)
		}
	}
	return nil
}
