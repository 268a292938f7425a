package data

import "math"

// SparseInstances is the caller-side source consumed by SparseMapping: one
// row of feature values per instance, paired index-for-index with the feature
// positions they occupy.
type SparseInstances struct {
	Values       [][]float64
	Indexes      [][]int
	FeatureCount int
}

// SparseMapping adapts in-memory sparse instance data: the instance source is
// a *SparseInstances and the label source is a []int of non-negative class
// labels.
type SparseMapping struct{}

func (SparseMapping) sparseSource(source interface{}) (*SparseInstances, error) {
	if source == nil {
		return nil, Mappingf("nil instance source")
	}
	s, ok := source.(*SparseInstances)
	if !ok {
		return nil, Mappingf("instance source must be *SparseInstances, got %T", source)
	}
	if s == nil || len(s.Values) == 0 {
		return nil, Mappingf("empty instance source")
	}
	if len(s.Indexes) != len(s.Values) {
		return nil, Mappingf("%d value rows but %d index rows", len(s.Values), len(s.Indexes))
	}
	if s.FeatureCount < 1 {
		return nil, Mappingf("sparse source needs a positive feature count, got %d", s.FeatureCount)
	}
	return s, nil
}

// IsSparse always reports true.
func (SparseMapping) IsSparse(source interface{}) (bool, error) {
	return true, nil
}

// FeatureCount returns the declared total feature count of the source.
func (m SparseMapping) FeatureCount(source interface{}) (int, error) {
	s, err := m.sparseSource(source)
	if err != nil {
		return 0, err
	}
	return s.FeatureCount, nil
}

// ClassCount returns one more than the largest label in the label source.
func (m SparseMapping) ClassCount(source, labelSource interface{}) (int, error) {
	s, err := m.sparseSource(source)
	if err != nil {
		return 0, err
	}
	return intLabelClassCount(labelSource, len(s.Values))
}

// FeatureValues returns the value rows of one batch, checking each row pairs
// with its index row and holds finite values.
func (m SparseMapping) FeatureValues(source interface{}, batch, batchCount int) ([][]float64, error) {
	s, err := m.sparseSource(source)
	if err != nil {
		return nil, err
	}
	r, err := m.batchRange(s, batch, batchCount)
	if err != nil {
		return nil, err
	}
	for i := r.Start; i < r.End; i++ {
		if len(s.Values[i]) != len(s.Indexes[i]) {
			return nil, Mappingf("instance %d has %d values but %d indexes", i, len(s.Values[i]), len(s.Indexes[i]))
		}
		for _, v := range s.Values[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, Mappingf("non-finite feature value %f in instance %d", v, i)
			}
		}
	}
	return s.Values[r.Start:r.End], nil
}

// FeatureIndexes returns the index rows of one batch, checking each index
// falls inside the declared feature range.
func (m SparseMapping) FeatureIndexes(source interface{}, batch, batchCount int) ([][]int, error) {
	s, err := m.sparseSource(source)
	if err != nil {
		return nil, err
	}
	r, err := m.batchRange(s, batch, batchCount)
	if err != nil {
		return nil, err
	}
	for i := r.Start; i < r.End; i++ {
		for _, j := range s.Indexes[i] {
			if j < 0 || j >= s.FeatureCount {
				return nil, Mappingf("instance %d references feature %d outside [0, %d)", i, j, s.FeatureCount)
			}
		}
	}
	return s.Indexes[r.Start:r.End], nil
}

// Labels returns the class labels of one batch.
func (m SparseMapping) Labels(source, labelSource interface{}, batch, batchCount int) ([]int, error) {
	s, err := m.sparseSource(source)
	if err != nil {
		return nil, err
	}
	return intLabelBatch(labelSource, len(s.Values), batch, batchCount)
}

func (SparseMapping) batchRange(s *SparseInstances, batch, batchCount int) (Range, error) {
	ranges, err := Partition(len(s.Values), batchCount)
	if err != nil {
		return Range{}, err
	}
	if batch < 0 || batch >= batchCount {
		return Range{}, Mappingf("batch %d outside [0, %d)", batch, batchCount)
	}
	return ranges[batch], nil
}
