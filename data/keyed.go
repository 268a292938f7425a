package data

import (
	"math"
	"sort"

	"github.com/xtgo/set"
)

// KeyedMapping adapts instances keyed by feature name: the instance source is
// a []map[string]float64 and the label source is a []int of non-negative
// class labels. The feature vocabulary is fixed at construction so repeated
// calls stay idempotent, and instances are emitted sparsely in vocabulary
// order.
type KeyedMapping struct {
	// Features is the sorted feature vocabulary. Exported so the mapping can
	// travel with a classifier on a dump stream.
	Features []string

	index map[string]int
}

// NewKeyedMapping builds a mapping whose vocabulary is the union of feature
// names seen in the given instances.
func NewKeyedMapping(instances []map[string]float64) (*KeyedMapping, error) {
	if len(instances) == 0 {
		return nil, Mappingf("empty instance source")
	}
	var names sort.StringSlice
	for _, instance := range instances {
		for name := range instance {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, Mappingf("instances carry no features")
	}
	sort.Sort(names)
	names = names[:set.Uniq(names)]
	return &KeyedMapping{Features: names}, nil
}

func (m *KeyedMapping) keyedSource(source interface{}) ([]map[string]float64, error) {
	if source == nil {
		return nil, Mappingf("nil instance source")
	}
	instances, ok := source.([]map[string]float64)
	if !ok {
		return nil, Mappingf("instance source must be []map[string]float64, got %T", source)
	}
	if len(instances) == 0 {
		return nil, Mappingf("empty instance source")
	}
	return instances, nil
}

func (m *KeyedMapping) featureIndex() map[string]int {
	if m.index == nil {
		m.index = make(map[string]int, len(m.Features))
		for i, name := range m.Features {
			m.index[name] = i
		}
	}
	return m.index
}

// IsSparse always reports true.
func (*KeyedMapping) IsSparse(source interface{}) (bool, error) {
	return true, nil
}

// FeatureCount returns the vocabulary size.
func (m *KeyedMapping) FeatureCount(source interface{}) (int, error) {
	if len(m.Features) == 0 {
		return 0, Mappingf("keyed mapping has no vocabulary")
	}
	return len(m.Features), nil
}

// ClassCount returns one more than the largest label in the label source.
func (m *KeyedMapping) ClassCount(source, labelSource interface{}) (int, error) {
	instances, err := m.keyedSource(source)
	if err != nil {
		return 0, err
	}
	return intLabelClassCount(labelSource, len(instances))
}

// FeatureValues returns, for each instance of the batch, the values of its
// in-vocabulary features in vocabulary order. Features absent from the
// vocabulary are ignored.
func (m *KeyedMapping) FeatureValues(source interface{}, batch, batchCount int) ([][]float64, error) {
	values, _, err := m.vectorise(source, batch, batchCount)
	return values, err
}

// FeatureIndexes returns the vocabulary indexes paired with FeatureValues.
func (m *KeyedMapping) FeatureIndexes(source interface{}, batch, batchCount int) ([][]int, error) {
	_, indexes, err := m.vectorise(source, batch, batchCount)
	return indexes, err
}

// Labels returns the class labels of one batch.
func (m *KeyedMapping) Labels(source, labelSource interface{}, batch, batchCount int) ([]int, error) {
	instances, err := m.keyedSource(source)
	if err != nil {
		return nil, err
	}
	return intLabelBatch(labelSource, len(instances), batch, batchCount)
}

func (m *KeyedMapping) vectorise(source interface{}, batch, batchCount int) ([][]float64, [][]int, error) {
	instances, err := m.keyedSource(source)
	if err != nil {
		return nil, nil, err
	}
	ranges, err := Partition(len(instances), batchCount)
	if err != nil {
		return nil, nil, err
	}
	if batch < 0 || batch >= batchCount {
		return nil, nil, Mappingf("batch %d outside [0, %d)", batch, batchCount)
	}
	r := ranges[batch]
	index := m.featureIndex()
	values := make([][]float64, 0, r.Len())
	indexes := make([][]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		var cols sort.IntSlice
		for name := range instances[i] {
			if j, ok := index[name]; ok {
				cols = append(cols, j)
			}
		}
		sort.Sort(cols)
		vals := make([]float64, len(cols))
		for k, j := range cols {
			v := instances[i][m.Features[j]]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, Mappingf("non-finite feature value %f in instance %d", v, i)
			}
			vals[k] = v
		}
		values = append(values, vals)
		indexes = append(indexes, cols)
	}
	return values, indexes, nil
}
