package engine

import (
	"fmt"

	"github.com/awslabs/stickler/domain"
)

// rollupAggregate computes Aggregate.Counts (and, when requested,
// Aggregate.Derived) for every node in the tree, post-order (§3
// N.aggregate, invariants I2/I3). A record node's aggregate is the sum
// of its children's; a list node's is the sum of its gated elements'
// (§4.7); a leaf — a primitive field, or a list collapsed to a single
// TN/FA/FN classification with nothing to recurse into — copies its own
// Overall.Counts, since that already IS a primitive-level count.
//
// The root is special-cased afterward: §3's cfg.include_in_aggregate
// only ever gates the ROOT's rollup, so every non-root node keeps the
// full sum computed above even when one of its own fields opted out.
func rollupAggregate(root *domain.Node, opts domain.Options) {
	rollupNode(root, opts)
	if len(root.Fields) == 0 {
		return
	}
	var agg domain.Counts
	for _, name := range root.FieldOrder {
		child := root.Fields[name]
		if child.IncludeInAggregate {
			agg.Add(child.Aggregate.Counts)
		}
	}
	root.Aggregate.Counts = agg
	if opts.AddDerivedMetrics {
		d := domain.ComputeDerived(agg, opts.RecallWithFD)
		root.Aggregate.Derived = &d
	}
}

func rollupNode(n *domain.Node, opts domain.Options) {
	switch {
	case n.IsList && len(n.Elements) > 0:
		// A record-list node's own Fields holds the §4.7 fields[f]
		// per-field summary across gated elements — presentational only.
		// The node's own aggregate must roll up through Elements (I8:
		// gated-out pairs contribute nothing), never through Fields,
		// which would double the gated pairs' counts back in.
		var agg domain.Counts
		for _, el := range n.Elements {
			rollupNode(el.Node, opts)
			agg.Add(el.Node.Aggregate.Counts)
		}
		n.Aggregate.Counts = agg
		for _, name := range n.FieldOrder {
			rollupNode(n.Fields[name], opts)
		}
	case n.IsList:
		// No gated elements to recurse into — a primitive list, or a
		// record list fully collapsed to object-level FA/FN/FD — is
		// already primitive-level, so aggregate copies overall.
		n.Aggregate.Counts = n.Overall.Counts
	case len(n.Fields) > 0:
		var agg domain.Counts
		for _, name := range n.FieldOrder {
			child := n.Fields[name]
			rollupNode(child, opts)
			agg.Add(child.Aggregate.Counts)
		}
		n.Aggregate.Counts = agg
	case n.ZeroAggregate:
		n.Aggregate.Counts = domain.Counts{}
	default:
		n.Aggregate.Counts = n.Overall.Counts
	}
	if opts.AddDerivedMetrics {
		d := domain.ComputeDerived(n.Aggregate.Counts, opts.RecallWithFD)
		n.Aggregate.Derived = &d
	}
}

// collectNonMatches walks root depth-first, in declared field order,
// building the flattened §4.8 report. A node with named Fields is
// never itself reported — whatever single classification a
// compareRecordField call folded it into (§4.2 step 3) is a rollup for
// its parent's bookkeeping only, and the real disagreements are
// whatever leaves inside it did not match. A list node is reported via
// its own ListNonMatches (positional, not field-named) and, for a
// record list, by recursing into each gated element under an
// index-qualified path.
func collectNonMatches(root *domain.Node) []domain.NonMatch {
	var out []domain.NonMatch
	walkNonMatches(root, "", &out)
	return out
}

func walkNonMatches(n *domain.Node, path string, out *[]domain.NonMatch) {
	switch {
	case n.IsList:
		for _, nm := range n.ListNonMatches {
			nm.FieldPath = path
			*out = append(*out, nm)
		}
		for _, el := range n.Elements {
			walkNonMatches(el.Node, fmt.Sprintf("%s[%d]", path, el.Index), out)
		}
	case len(n.Fields) > 0:
		for _, name := range n.FieldOrder {
			child := n.Fields[name]
			childPath := name
			if path != "" {
				childPath = path + "." + name
			}
			walkNonMatches(child, childPath, out)
		}
	default:
		if kind, ok := leafNonMatchKind(n); ok {
			*out = append(*out, domain.NonMatch{
				FieldPath: path,
				Kind:      kind,
				GTValue:   n.GTDisplay,
				PredValue: n.PredDisplay,
				Details:   nonMatchDetails(kind),
			})
		}
	}
}

// nonMatchDetails builds the §4.8 "details.reason" map for kind, using
// the same three generic reasons the spec gives as examples.
func nonMatchDetails(kind domain.NonMatchKind) map[string]string {
	switch kind {
	case domain.NonMatchFD:
		return map[string]string{"reason": "below threshold (raw < τ)"}
	case domain.NonMatchFN:
		return map[string]string{"reason": "missing in prediction"}
	case domain.NonMatchFA:
		return map[string]string{"reason": "extra in prediction"}
	default:
		return nil
	}
}

// leafNonMatchKind reports the NonMatchKind a leaf's single-unit Counts
// represents, and false for TP/TN (never reported).
func leafNonMatchKind(n *domain.Node) (domain.NonMatchKind, bool) {
	switch {
	case n.Overall.Counts.FD > 0:
		return domain.NonMatchFD, true
	case n.Overall.Counts.FA > 0:
		return domain.NonMatchFA, true
	case n.Overall.Counts.FN > 0:
		return domain.NonMatchFN, true
	default:
		return "", false
	}
}
