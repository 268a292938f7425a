// Package data holds the native dense/sparse batch representation of the
// Bayes point machine classifiers, the mapping contract which translates
// caller-supplied data sources into it, and the deterministic batch
// partitioner used for memory-bounded training.
package data

import "encoding/gob"

// Mapping translates an arbitrarily-typed caller data source into the native
// columnar representation. It is the only component that touches caller
// types. Implementations must be idempotent: repeated calls with the same
// source and batch arguments return equal results, so the batch count may
// change between calls without re-deriving unrelated state. Any method may
// fail with a MappingError when the caller data is malformed.
type Mapping interface {
	// IsSparse reports whether the source is to be represented sparsely.
	IsSparse(source interface{}) (bool, error)
	// FeatureCount returns the total number of features in the source.
	FeatureCount(source interface{}) (int, error)
	// ClassCount returns the number of classes covered by the label source.
	ClassCount(source, labelSource interface{}) (int, error)
	// FeatureValues returns the feature values of one batch of instances.
	FeatureValues(source interface{}, batch, batchCount int) ([][]float64, error)
	// FeatureIndexes returns the feature indexes paired with FeatureValues
	// for sparse sources, or nil for dense sources.
	FeatureIndexes(source interface{}, batch, batchCount int) ([][]int, error)
	// Labels returns the class labels of one batch of instances.
	Labels(source, labelSource interface{}, batch, batchCount int) ([]int, error)
}

func init() {
	// Built-in mappings can travel alongside a classifier on a dump stream.
	gob.Register(&DenseMapping{})
	gob.Register(&SparseMapping{})
	gob.Register(&KeyedMapping{})
}
