package bayespoint

// Capabilities describes what a classifier variant supports. Capabilities are
// fixed at construction and never altered by lifecycle phase.
type Capabilities struct {
	SupportsIncrementalTraining bool
	SupportsModelEvidence       bool
	SupportsCustomLossFunction  bool
	Multiclass                  bool
	GaussianPrior               bool
}

func capabilitiesFor(multiclass, gaussianPrior bool) Capabilities {
	return Capabilities{
		SupportsIncrementalTraining: true,
		SupportsModelEvidence:       true,
		SupportsCustomLossFunction:  true,
		Multiclass:                  multiclass,
		GaussianPrior:               gaussianPrior,
	}
}
