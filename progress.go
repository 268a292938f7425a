package bayespoint

// Progress carries per-iteration training diagnostics: the number of
// completed refinement iterations and the weight posterior as of that
// iteration.
type Progress struct {
	CompletedIterations int
	Posterior           WeightPosterior
}

// ProgressFunc observes training progress. Observers are invoked
// synchronously on the training goroutine in strict iteration order, and
// must not re-enter training on the same classifier.
type ProgressFunc func(Progress)

// Subscribe registers a progress observer for all subsequent training calls.
func (c *Classifier) Subscribe(f ProgressFunc) {
	if f != nil {
		c.observers = append(c.observers, f)
	}
}

func (c *Classifier) notify(completed int, posterior WeightPosterior) {
	for _, f := range c.observers {
		f(Progress{CompletedIterations: completed, Posterior: posterior})
	}
}
