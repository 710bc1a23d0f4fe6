package domain

// RenderedNode is the standard (non-evaluator) external result shape.
// It mirrors Node but applies the opt-in gates from Options: Aggregate
// is present only when IncludeConfusionMatrix is set, and NonMatches
// only appears at the root, only when DocumentNonMatches is set. The
// engine's internal Node always carries the full tree regardless of
// options — Render is a pure presentation step over it, the way the
// teacher's reporter package renders a ComplexityReport from an
// analyzer result without mutating the analyzer's own output.
type RenderedNode struct {
	Overall    Overall                  `json:"overall"`
	Fields     map[string]*RenderedNode `json:"fields,omitempty"`
	Aggregate  *Aggregate               `json:"aggregate,omitempty"`
	NonMatches []NonMatch               `json:"non_matches,omitempty"`
}

// EvaluatorResult is the alternate top-level shape produced when
// Options.EvaluatorFormat is set (§4.8 "Evaluator format"). It replaces
// overall with the root's derived metrics plus anls_score, and exposes
// each top-level field's own derived metrics. The rest of the tree
// (non-matches, nested fields-of-fields, raw counts) is omitted, per
// spec: "never mixed with the standard shape."
type EvaluatorResult struct {
	Derived
	AnlsScore float64            `json:"anls_score"`
	Fields    map[string]Derived `json:"fields,omitempty"`
}

// Render shapes root into the external result the caller asked for via
// opts. Pass the Node returned by engine Compare (which always carries
// the complete internal tree) and the same Options used for the call.
func Render(root *Node, opts Options) interface{} {
	if opts.EvaluatorFormat {
		return renderEvaluator(root)
	}
	return renderStandard(root, opts)
}

func renderEvaluator(root *Node) EvaluatorResult {
	out := EvaluatorResult{AnlsScore: root.Overall.SimilarityScore}
	if root.Aggregate.Derived != nil {
		out.Derived = *root.Aggregate.Derived
	}
	if len(root.FieldOrder) > 0 {
		out.Fields = make(map[string]Derived, len(root.FieldOrder))
		for _, name := range root.FieldOrder {
			child := root.Fields[name]
			if child != nil && child.Aggregate.Derived != nil {
				out.Fields[name] = *child.Aggregate.Derived
			} else {
				out.Fields[name] = Derived{}
			}
		}
	}
	return out
}

func renderStandard(root *Node, opts Options) *RenderedNode {
	return renderNode(root, opts, true)
}

func renderNode(n *Node, opts Options, isRoot bool) *RenderedNode {
	if n == nil {
		return nil
	}
	rn := &RenderedNode{Overall: n.Overall}
	if opts.IncludeConfusionMatrix {
		agg := n.Aggregate
		rn.Aggregate = &agg
	}
	if isRoot && opts.DocumentNonMatches {
		rn.NonMatches = n.NonMatches
	}
	if len(n.FieldOrder) > 0 {
		rn.Fields = make(map[string]*RenderedNode, len(n.FieldOrder))
		for _, name := range n.FieldOrder {
			rn.Fields[name] = renderNode(n.Fields[name], opts, false)
		}
	}
	return rn
}
