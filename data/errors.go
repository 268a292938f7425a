package data

import "fmt"

// MappingError reports malformed or missing caller data discovered by a
// mapping. Mapping faults are propagated verbatim; the classifier never
// recovers from them.
type MappingError struct {
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping: %s", e.Reason)
}

// Mappingf creates a MappingError from a format string.
func Mappingf(format string, args ...interface{}) error {
	return &MappingError{Reason: fmt.Sprintf(format, args...)}
}

// BatchCountError reports a batch count exceeding the number of instances.
type BatchCountError struct {
	BatchCount    int
	InstanceCount int
}

func (e *BatchCountError) Error() string {
	return fmt.Sprintf("cannot split %d instances into %d batches", e.InstanceCount, e.BatchCount)
}

// BatchError reports a structurally invalid native batch, or a batch whose
// dimensions do not match a classifier's fixed feature and class counts.
type BatchError struct {
	Reason string
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("bayes point machine classifier: %s", e.Reason)
}

// Batchf creates a BatchError from a format string.
func Batchf(format string, args ...interface{}) error {
	return &BatchError{Reason: fmt.Sprintf(format, args...)}
}
