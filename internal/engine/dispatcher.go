package engine

import (
	"context"

	"github.com/awslabs/stickler/domain"
	"github.com/awslabs/stickler/internal/telemetry"
)

// dispatcher carries the per-Compare-call state the recursive
// traversal shares: the similarity registry and the caller's options.
// It holds no state across calls and is cheap to construct per
// Compare invocation (§5: "No shared mutable state between
// comparisons").
type dispatcher struct {
	registry *domain.Registry
	opts     domain.Options
	logger   *telemetry.Logger
}

// compareRecord implements §4.1's per-field traversal for one record
// pair against schema. It is called both at the top level (by
// Engine.Compare) and recursively for nested Record fields and for
// each gated pair of a record list (§4.2 step 3, §4.7).
func (d *dispatcher) compareRecord(ctx context.Context, schema *domain.Schema, gt, pred domain.Record) (*domain.Node, error) {
	node := &domain.Node{}
	var totalScore, totalWeight float64
	allMatched := true

	for _, field := range schema.Fields {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}

		gv := gt.Get(field.Name)
		pv := pred.Get(field.Name)

		child, err := d.dispatch(ctx, field.Name, gv, pv, field.Type, field.Config)
		if err != nil {
			return nil, err
		}
		child.IncludeInAggregate = field.Config.IncludeInAggregate

		node.AddField(field.Name, child)
		node.Overall.Counts.Add(child.Overall.Counts)
		totalScore += child.ThresholdAppliedScore * child.Weight
		totalWeight += child.Weight
		if child.RawSimilarityScore < field.Config.Threshold-1e-10 {
			allMatched = false
		}
	}

	if totalWeight > 0 {
		node.Overall.SimilarityScore = totalScore / totalWeight
	} else if domain.IsNullEquivalent(gt) && domain.IsNullEquivalent(pred) {
		node.Overall.SimilarityScore = 1.0
	} else {
		node.Overall.SimilarityScore = 0.0
	}
	node.Overall.AllFieldsMatched = allMatched
	node.RawSimilarityScore = node.Overall.SimilarityScore
	node.ThresholdAppliedScore = node.Overall.SimilarityScore
	return node, nil
}

// dispatch routes one field pair by declared type and null state to its
// specialized comparator, per the §4.2 decision procedure.
func (d *dispatcher) dispatch(ctx context.Context, name string, gv, pv interface{}, ft domain.FieldType, cfg domain.FieldConfig) (*domain.Node, error) {
	gNull := domain.IsNullEquivalent(gv)
	pNull := domain.IsNullEquivalent(pv)

	switch ft.Kind {
	case domain.KindListPrim:
		return d.comparePrimitiveList(gv, pv, ft, cfg)
	case domain.KindListRecord:
		return d.compareRecordList(ctx, gv, pv, ft, cfg)
	case domain.KindRecord:
		return d.compareRecordField(ctx, gv, pv, ft, cfg, gNull, pNull)
	default:
		return d.comparePrimitiveField(gv, pv, ft, cfg, gNull, pNull)
	}
}

// comparePrimitiveField implements §4.2 step 2 and §4.5: the 4-way null
// table followed by a similarity call when both sides are present, and
// §4.4's cross-type FD when the runtime shapes disagree with a
// primitive declaration.
func (d *dispatcher) comparePrimitiveField(gv, pv interface{}, ft domain.FieldType, cfg domain.FieldConfig, gNull, pNull bool) (*domain.Node, error) {
	gDisp, pDisp := domain.Stringify(gv), domain.Stringify(pv)

	switch {
	case gNull && pNull:
		return withDisplay(domain.NewLeaf("TN", 1.0, 1.0, cfg.Weight), gDisp, pDisp), nil
	case gNull && !pNull:
		return withDisplay(domain.NewLeaf("FA", 0.0, 0.0, cfg.Weight), gDisp, pDisp), nil
	case !gNull && pNull:
		return withDisplay(domain.NewLeaf("FN", 0.0, 0.0, cfg.Weight), gDisp, pDisp), nil
	}

	if runtimeShapeMismatch(gv, pv) {
		return withDisplay(domain.NewLeaf("FD", 0.0, 0.0, cfg.Weight), gDisp, pDisp), nil
	}

	fn, ok := d.registry.Lookup(cfg.ComparatorName)
	if !ok {
		return nil, domain.NewUnknownComparatorError(cfg.ComparatorName)
	}
	raw, err := fn(gv, pv)
	if err != nil || raw < 0 || raw > 1 {
		// §7: a similarity function error, or one that breaks the [0,1]
		// contract, is treated as a 0.0 score classified FD — never
		// propagated as an engine error.
		if d.logger != nil {
			d.logger.Warnf("comparator %q returned an invalid result (err=%v, score=%v), treating as 0.0", cfg.ComparatorName, err, raw)
		}
		raw = 0.0
	}
	label := domain.Classify(raw, cfg.Threshold)
	applied := domain.ThresholdAppliedScore(raw, cfg.Threshold, cfg.ClipUnderThreshold)
	return withDisplay(domain.NewLeaf(label, raw, applied, cfg.Weight), gDisp, pDisp), nil
}

// withDisplay stamps a leaf's gt/pred stringified display values, used
// later by the non-match collector (§4.8) when this node turns out to
// be part of a disagreement.
func withDisplay(n *domain.Node, gDisp, pDisp string) *domain.Node {
	n.GTDisplay = gDisp
	n.PredDisplay = pDisp
	return n
}

// withZeroAggregate marks n so the metrics builder rolls its aggregate up
// as zero primitives rather than copying its (one-object) overall counts.
func withZeroAggregate(n *domain.Node) *domain.Node {
	n.ZeroAggregate = true
	return n
}

// compareRecordField implements §4.2 step 3: null handling at the whole
// -subtree level, or a full recursive compare converted to a
// classification against this field's threshold.
func (d *dispatcher) compareRecordField(ctx context.Context, gv, pv interface{}, ft domain.FieldType, cfg domain.FieldConfig, gNull, pNull bool) (*domain.Node, error) {
	gDisp, pDisp := domain.Stringify(gv), domain.Stringify(pv)

	switch {
	case gNull && pNull:
		return withDisplay(domain.NewLeaf("TN", 1.0, 1.0, cfg.Weight), gDisp, pDisp), nil
	case gNull && !pNull:
		return withZeroAggregate(withDisplay(domain.NewLeaf("FA", 0.0, 0.0, cfg.Weight), gDisp, pDisp)), nil
	case !gNull && pNull:
		return withZeroAggregate(withDisplay(domain.NewLeaf("FN", 0.0, 0.0, cfg.Weight), gDisp, pDisp)), nil
	}

	if runtimeShapeMismatch(gv, pv) {
		return withDisplay(domain.NewLeaf("FD", 0.0, 0.0, cfg.Weight), gDisp, pDisp), nil
	}

	sub, err := d.compareRecord(ctx, ft.Sub, domain.AsRecord(gv), domain.AsRecord(pv))
	if err != nil {
		return nil, err
	}

	// sub.Overall.SimilarityScore / AllFieldsMatched already reflect the
	// sub-record's own internal field-by-field comparison (§4.1) — that
	// stays intact for callers inspecting fields[name] directly. What
	// changes here is only what this field CONTRIBUTES to the parent:
	// §4.2 step 3 converts the subtree's score into a single object
	// -level classification, the same way a leaf primitive does.
	raw := sub.Overall.SimilarityScore
	label := domain.Classify(raw, cfg.Threshold)
	applied := domain.ThresholdAppliedScore(raw, cfg.Threshold, cfg.ClipUnderThreshold)
	sub.Overall.Counts = domain.CountsForLabel(label)
	sub.RawSimilarityScore = raw
	sub.ThresholdAppliedScore = applied
	sub.Weight = cfg.Weight
	return sub, nil
}

// runtimeShapeMismatch implements §4.2 step 6 / §4.4: a scalar where a
// list or record is declared, or vice versa.
func runtimeShapeMismatch(gv, pv interface{}) bool {
	switch gv.(type) {
	case []interface{}:
		if _, ok := pv.([]interface{}); !ok {
			return true
		}
	case domain.Record:
		if _, ok := asRecordLike(pv); !ok {
			return true
		}
	case map[string]interface{}:
		if _, ok := asRecordLike(pv); !ok {
			return true
		}
	default:
		switch pv.(type) {
		case []interface{}, domain.Record, map[string]interface{}:
			return true
		}
	}
	return false
}

func asRecordLike(v interface{}) (domain.Record, bool) {
	switch t := v.(type) {
	case domain.Record:
		return t, true
	case map[string]interface{}:
		return domain.Record(t), true
	default:
		return nil, false
	}
}
