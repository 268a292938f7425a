package data

import "math"

// DenseMapping adapts in-memory dense instance data: the instance source is a
// [][]float64 of equal-length feature rows and the label source is a []int of
// non-negative class labels.
type DenseMapping struct{}

func (DenseMapping) denseSource(source interface{}) ([][]float64, error) {
	if source == nil {
		return nil, Mappingf("nil instance source")
	}
	rows, ok := source.([][]float64)
	if !ok {
		return nil, Mappingf("instance source must be [][]float64, got %T", source)
	}
	if len(rows) == 0 {
		return nil, Mappingf("empty instance source")
	}
	return rows, nil
}

// IsSparse always reports false.
func (DenseMapping) IsSparse(source interface{}) (bool, error) {
	return false, nil
}

// FeatureCount returns the length of the first feature row.
func (m DenseMapping) FeatureCount(source interface{}) (int, error) {
	rows, err := m.denseSource(source)
	if err != nil {
		return 0, err
	}
	return len(rows[0]), nil
}

// ClassCount returns one more than the largest label in the label source.
func (m DenseMapping) ClassCount(source, labelSource interface{}) (int, error) {
	rows, err := m.denseSource(source)
	if err != nil {
		return 0, err
	}
	return intLabelClassCount(labelSource, len(rows))
}

// FeatureValues returns the feature rows of one batch, checking every row for
// consistent length and finite values.
func (m DenseMapping) FeatureValues(source interface{}, batch, batchCount int) ([][]float64, error) {
	rows, err := m.denseSource(source)
	if err != nil {
		return nil, err
	}
	ranges, err := Partition(len(rows), batchCount)
	if err != nil {
		return nil, err
	}
	if batch < 0 || batch >= batchCount {
		return nil, Mappingf("batch %d outside [0, %d)", batch, batchCount)
	}
	r := ranges[batch]
	width := len(rows[0])
	for i := r.Start; i < r.End; i++ {
		if len(rows[i]) != width {
			return nil, Mappingf("ragged instance source: row %d has %d features, row 0 has %d", i, len(rows[i]), width)
		}
		for _, v := range rows[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, Mappingf("non-finite feature value %f in row %d", v, i)
			}
		}
	}
	return rows[r.Start:r.End], nil
}

// FeatureIndexes returns nil: dense sources carry no explicit indexes.
func (DenseMapping) FeatureIndexes(source interface{}, batch, batchCount int) ([][]int, error) {
	return nil, nil
}

// Labels returns the class labels of one batch.
func (m DenseMapping) Labels(source, labelSource interface{}, batch, batchCount int) ([]int, error) {
	rows, err := m.denseSource(source)
	if err != nil {
		return nil, err
	}
	return intLabelBatch(labelSource, len(rows), batch, batchCount)
}

// intLabelClassCount derives a class count from a []int label source: one
// more than the largest label. Labels must be non-negative and cover every
// instance.
func intLabelClassCount(labelSource interface{}, instances int) (int, error) {
	labels, err := intLabels(labelSource, instances)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, label := range labels {
		if label > max {
			max = label
		}
	}
	return max + 1, nil
}

func intLabels(labelSource interface{}, instances int) ([]int, error) {
	if labelSource == nil {
		return nil, Mappingf("nil label source")
	}
	labels, ok := labelSource.([]int)
	if !ok {
		return nil, Mappingf("label source must be []int, got %T", labelSource)
	}
	if len(labels) != instances {
		return nil, Mappingf("%d labels for %d instances", len(labels), instances)
	}
	for i, label := range labels {
		if label < 0 {
			return nil, Mappingf("negative label %d at instance %d", label, i)
		}
	}
	return labels, nil
}

func intLabelBatch(labelSource interface{}, instances, batch, batchCount int) ([]int, error) {
	labels, err := intLabels(labelSource, instances)
	if err != nil {
		return nil, err
	}
	ranges, err := Partition(len(labels), batchCount)
	if err != nil {
		return nil, err
	}
	if batch < 0 || batch >= batchCount {
		return nil, Mappingf("batch %d outside [0, %d)", batch, batchCount)
	}
	r := ranges[batch]
	return labels[r.Start:r.End], nil
}
