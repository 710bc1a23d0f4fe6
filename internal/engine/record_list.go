package engine

import (
	"context"

	"github.com/awslabs/stickler/domain"
	"github.com/awslabs/stickler/internal/assignment"
)

// compareRecordList implements §4.7: lists of nested records matched by
// optimal assignment on whole-object similarity, then gated into full
// field-by-field recursion only when a match clears the element
// schema's match_threshold τ. A matched pair below τ is scored FD at
// the object level but is never recursed into — its fields never reach
// this node's Aggregate rollup, and it is reported as a single non
// -match rather than a field-by-field breakdown.
func (d *dispatcher) compareRecordList(ctx context.Context, gv, pv interface{}, ft domain.FieldType, cfg domain.FieldConfig) (*domain.Node, error) {
	gList := domain.AsList(gv)
	pList := domain.AsList(pv)
	gNull := domain.IsNullEquivalent(gv)
	pNull := domain.IsNullEquivalent(pv)

	if gNull && pNull {
		leaf := domain.NewLeaf("TN", 1.0, 1.0, cfg.Weight)
		leaf.IsList = true
		return leaf, nil
	}
	if gNull != pNull {
		label := domain.NonMatchFN
		items := gList
		if gNull {
			label = domain.NonMatchFA
			items = pList
		}
		var nonMatches []domain.NonMatch
		for _, v := range items {
			if label == domain.NonMatchFN {
				nonMatches = append(nonMatches, domain.NonMatch{Kind: label, GTValue: domain.Stringify(v), Details: nonMatchDetails(label)})
			} else {
				nonMatches = append(nonMatches, domain.NonMatch{Kind: label, PredValue: domain.Stringify(v), Details: nonMatchDetails(label)})
			}
		}
		countLabel := "FN"
		if label == domain.NonMatchFA {
			countLabel = "FA"
		}
		return &domain.Node{
			Overall: domain.Overall{
				Counts:           countsRepeated(countLabel, len(items)),
				SimilarityScore:  0.0,
				AllFieldsMatched: len(items) == 0,
			},
			RawSimilarityScore:    0.0,
			ThresholdAppliedScore: 0.0,
			Weight:                cfg.Weight,
			IsList:                true,
			ListNonMatches:        nonMatches,
		}, nil
	}

	elemSchema := ft.Sub
	tau := elemSchema.EffectiveMatchThreshold()

	// The cost matrix entries are full recursive compares — each one is
	// the Node that gets reused as the gated element subtree if its
	// match clears τ, so it is never recomputed.
	subs := make([][]*domain.Node, len(gList))
	matrix := make([][]float64, len(gList))
	for i, g := range gList {
		subs[i] = make([]*domain.Node, len(pList))
		matrix[i] = make([]float64, len(pList))
		for j, p := range pList {
			if err := checkCancelled(ctx); err != nil {
				return nil, err
			}
			sub, err := d.compareRecord(ctx, elemSchema, domain.AsRecord(g), domain.AsRecord(p))
			if err != nil {
				return nil, err
			}
			subs[i][j] = sub
			matrix[i][j] = sub.Overall.SimilarityScore
		}
	}

	res := assignment.Solve(matrix)

	var counts domain.Counts
	var matchedSum float64
	var elements []domain.ListElement
	var nonMatches []domain.NonMatch

	for _, m := range res.Matches {
		matchedSum += m.Score
		sub := subs[m.Row][m.Col]
		if domain.Classify(m.Score, tau) == "TP" {
			counts.Add(domain.CountsForLabel("TP"))
			elements = append(elements, domain.ListElement{Index: m.Row, Node: sub})
		} else {
			counts.Add(domain.CountsForLabel("FD"))
			score := m.Score
			nonMatches = append(nonMatches, domain.NonMatch{
				Kind:       domain.NonMatchFD,
				GTValue:    domain.Stringify(gList[m.Row]),
				PredValue:  domain.Stringify(pList[m.Col]),
				Similarity: &score,
				Details:    map[string]string{"reason": "matched pair below match_threshold"},
			})
		}
	}
	for _, i := range res.UnmatchedRows {
		counts.Add(domain.CountsForLabel("FN"))
		nonMatches = append(nonMatches, domain.NonMatch{
			Kind:    domain.NonMatchFN,
			GTValue: domain.Stringify(gList[i]),
			Details: nonMatchDetails(domain.NonMatchFN),
		})
	}
	for _, j := range res.UnmatchedCols {
		counts.Add(domain.CountsForLabel("FA"))
		nonMatches = append(nonMatches, domain.NonMatch{
			Kind:      domain.NonMatchFA,
			PredValue: domain.Stringify(pList[j]),
			Details:   nonMatchDetails(domain.NonMatchFA),
		})
	}

	denom := len(gList)
	if len(pList) > denom {
		denom = len(pList)
	}
	raw := 0.0
	if denom > 0 {
		raw = matchedSum / float64(denom)
	}

	listNode := &domain.Node{
		Overall: domain.Overall{
			Counts:           counts,
			SimilarityScore:  raw,
			AllFieldsMatched: counts.FD == 0 && counts.FA == 0 && counts.FN == 0,
		},
		RawSimilarityScore:    raw,
		ThresholdAppliedScore: raw,
		Weight:                cfg.Weight,
		IsList:                true,
		Elements:              elements,
		ListNonMatches:        nonMatches,
	}

	// §4.7 "Field-level children": fields[f] aggregates the recursed
	// field f across every gated pair only — pairs gated out below τ
	// never contributed a sub.Fields entry in the first place, so I8
	// holds automatically. Empty when no pair cleared τ.
	if len(elements) > 0 {
		for _, f := range elemSchema.Fields {
			var children []*domain.Node
			for _, el := range elements {
				if child, ok := el.Node.Fields[f.Name]; ok {
					children = append(children, child)
				}
			}
			listNode.AddField(f.Name, sumFieldAcrossElements(children))
		}
	}

	return listNode, nil
}

// sumFieldAcrossElements merges one declared field's recursed result
// across every gated record-list element into a single summary node:
// Counts sum, nested Record sub-fields recurse the same way, and the
// score/weight carried for display is averaged across elements.
func sumFieldAcrossElements(children []*domain.Node) *domain.Node {
	if len(children) == 0 {
		return &domain.Node{}
	}
	sum := &domain.Node{Weight: children[0].Weight, IsList: children[0].IsList}
	var rawSum, appliedSum, scoreSum float64
	for _, c := range children {
		sum.Overall.Counts.Add(c.Overall.Counts)
		rawSum += c.RawSimilarityScore
		appliedSum += c.ThresholdAppliedScore
		scoreSum += c.Overall.SimilarityScore
	}
	n := float64(len(children))
	sum.RawSimilarityScore = rawSum / n
	sum.ThresholdAppliedScore = appliedSum / n
	sum.Overall.SimilarityScore = scoreSum / n
	sum.Overall.AllFieldsMatched = sum.Overall.Counts.FD == 0 && sum.Overall.Counts.FA == 0 && sum.Overall.Counts.FN == 0

	for _, name := range children[0].FieldOrder {
		var sub []*domain.Node
		for _, c := range children {
			if fc, ok := c.Fields[name]; ok {
				sub = append(sub, fc)
			}
		}
		sum.AddField(name, sumFieldAcrossElements(sub))
	}
	return sum
}
