package domain

// Options selects the engine behaviors enumerated in §4.1.
type Options struct {
	// IncludeConfusionMatrix includes the hierarchical aggregate counts
	// tree in the rendered result.
	IncludeConfusionMatrix bool

	// DocumentNonMatches includes the flattened non-match list at the
	// top of the rendered result.
	DocumentNonMatches bool

	// EvaluatorFormat re-shapes the top-level output as precision/
	// recall/F1/accuracy (plus anls_score) rather than overall_score.
	EvaluatorFormat bool

	// RecallWithFD computes recall as tp/(tp+fn+fd) instead of
	// tp/(tp+fn). Only ever affects the derived block, never base
	// Counts.
	RecallWithFD bool

	// AddDerivedMetrics attaches derived precision/recall/F1/accuracy to
	// every aggregate block. Defaults on; see DefaultOptions.
	AddDerivedMetrics bool
}

// DefaultOptions returns the engine's default option set: derived
// metrics on, everything else off.
func DefaultOptions() Options {
	return Options{AddDerivedMetrics: true}
}
