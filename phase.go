package bayespoint

// Phase is the lifecycle phase of a classifier. The only transitions are
// Untrained to Trained or IncrementallyTrained by a first training call, and
// Trained to IncrementallyTrained by incremental training.
type Phase uint8

const (
	// Untrained is the phase of a freshly constructed classifier.
	Untrained Phase = iota
	// Trained is reached by the single permitted Train call.
	Trained
	// IncrementallyTrained is reached by any TrainIncremental call.
	IncrementallyTrained
)

func (p Phase) String() string {
	switch p {
	case Untrained:
		return "untrained"
	case Trained:
		return "trained"
	case IncrementallyTrained:
		return "incrementally trained"
	}
	return "unknown"
}
