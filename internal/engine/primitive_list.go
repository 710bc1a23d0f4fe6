package engine

import (
	"github.com/awslabs/stickler/domain"
	"github.com/awslabs/stickler/internal/assignment"
)

// comparePrimitiveList implements §4.6: order-irrelevant comparison of
// two lists of primitives via optimal assignment. The returned node has
// no named children — primitive lists carry no substructure.
func (d *dispatcher) comparePrimitiveList(gv, pv interface{}, ft domain.FieldType, cfg domain.FieldConfig) (*domain.Node, error) {
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
		// One side empty: every item on the populated side is
		// unmatched. §4.6 "One side empty".
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
		node := &domain.Node{
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
		}
		return node, nil
	}

	fn, ok := d.registry.Lookup(cfg.ComparatorName)
	if !ok {
		return nil, domain.NewUnknownComparatorError(cfg.ComparatorName)
	}

	matrix := make([][]float64, len(gList))
	for i, g := range gList {
		row := make([]float64, len(pList))
		for j, p := range pList {
			s, err := fn(g, p)
			if err != nil || s < 0 || s > 1 {
				s = 0.0
			}
			row[j] = s
		}
		matrix[i] = row
	}

	res := assignment.Solve(matrix)

	var counts domain.Counts
	var matchedSum float64
	var nonMatches []domain.NonMatch
	for _, m := range res.Matches {
		matchedSum += m.Score
		label := domain.Classify(m.Score, cfg.Threshold)
		counts.Add(domain.CountsForLabel(label))
		if label != "TP" {
			score := m.Score
			nonMatches = append(nonMatches, domain.NonMatch{
				Kind:       domain.NonMatchFD,
				GTValue:    domain.Stringify(gList[m.Row]),
				PredValue:  domain.Stringify(pList[m.Col]),
				Similarity: &score,
				Details:    nonMatchDetails(domain.NonMatchFD),
			})
		}
	}
	counts.Add(countsRepeated("FN", len(res.UnmatchedRows)))
	counts.Add(countsRepeated("FA", len(res.UnmatchedCols)))
	for _, i := range res.UnmatchedRows {
		nonMatches = append(nonMatches, domain.NonMatch{Kind: domain.NonMatchFN, GTValue: domain.Stringify(gList[i]), Details: nonMatchDetails(domain.NonMatchFN)})
	}
	for _, j := range res.UnmatchedCols {
		nonMatches = append(nonMatches, domain.NonMatch{Kind: domain.NonMatchFA, PredValue: domain.Stringify(pList[j]), Details: nonMatchDetails(domain.NonMatchFA)})
	}

	denom := len(gList)
	if len(pList) > denom {
		denom = len(pList)
	}
	raw := 0.0
	if denom > 0 {
		raw = matchedSum / float64(denom)
	}

	// §4.6: lists are never clipped.
	return &domain.Node{
		Overall: domain.Overall{
			Counts:           counts,
			SimilarityScore:  raw,
			AllFieldsMatched: counts.FD == 0 && counts.FA == 0 && counts.FN == 0,
		},
		RawSimilarityScore:    raw,
		ThresholdAppliedScore: raw,
		Weight:                cfg.Weight,
		IsList:                true,
		ListNonMatches:        nonMatches,
	}, nil
}

func countsRepeated(label string, n int) domain.Counts {
	var c domain.Counts
	for i := 0; i < n; i++ {
		c.Add(domain.CountsForLabel(label))
	}
	return c
}
