package bayespoint

import "fmt"

// ArgumentError reports a nil or invalid argument at a public entry point,
// raised before any caller data is inspected.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Reason)
}

// StateError reports an operation that is illegal for the classifier's
// current lifecycle phase, or a mutation of a frozen setting. The classifier
// state is untouched when one is returned.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
