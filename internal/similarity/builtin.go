// Package similarity provides the built-in SimilarityFunc implementations
// the default-by-type table in §4.3 requires to be usable out of the
// box: exact match, edit-distance for strings, and tolerance-based
// numeric comparison. Domain-specific comparators — embedding
// similarity, LLM judges, anything that calls out to an external
// service — stay external collaborators per §1 and are registered by
// the caller under whatever name their schema's x-comparator points at.
package similarity

import (
	"fmt"
	"math"

	"github.com/agext/levenshtein"
	"github.com/awslabs/stickler/domain"
)

// Exact returns 1.0 when gt and pred are equal after a type-tolerant
// comparison, 0.0 otherwise. Used as the default comparator for
// booleans, and available under "exact" for any primitive.
func Exact(gt, pred interface{}) (float64, error) {
	gs, gok := toComparable(gt)
	ps, pok := toComparable(pred)
	if !gok || !pok {
		return 0.0, nil
	}
	if gs == ps {
		return 1.0, nil
	}
	return 0.0, nil
}

func toComparable(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	case float64:
		return formatNumber(t), true
	case int:
		return formatNumber(float64(t)), true
	default:
		return "", false
	}
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%g", f)
}

// EditDistance returns a normalized string similarity via Levenshtein
// edit distance (1 - distance/max(len)), the default comparator for
// string fields (§4.3). Non-string input is treated as 0.0 rather than
// erroring (§4.5: "Implementations must treat unparseable/None as
// 0.0").
func EditDistance(gt, pred interface{}) (float64, error) {
	gs, gok := gt.(string)
	ps, pok := pred.(string)
	if !gok || !pok {
		return 0.0, nil
	}
	if gs == "" && ps == "" {
		return 1.0, nil
	}
	return levenshtein.Match(gs, ps, nil), nil
}

// NumericTolerance builds a SimilarityFunc that scores two numbers by
// how close they are relative to absolute and relative tolerances the
// caller configures on the comparator itself — the engine does not
// interpret these values (§4.5). A pair within tolerance scores 1.0;
// beyond it, similarity decays linearly from 1.0 at the window's edge to
// 0.0 ten windows further out (a difference of 11x the combined
// tolerance window), which keeps near-misses informative instead of a
// hard cliff while still failing decisively on gross mismatches. When
// the window is zero (no tolerance, or a zero gt with only a relative
// tolerance), only equal values score 1.0 and the decay runs over 10x
// |gt| (over 10 when gt is 0).
func NumericTolerance(absTolerance, relTolerance float64) domain.SimilarityFunc {
	return func(gt, pred interface{}) (float64, error) {
		g, gok := toFloat(gt)
		p, pok := toFloat(pred)
		if !gok || !pok {
			return 0.0, nil
		}
		diff := math.Abs(g - p)
		window := absTolerance + relTolerance*math.Abs(g)
		if window <= 0 {
			if diff == 0 {
				return 1.0, nil
			}
			scale := math.Abs(g)
			if scale == 0 {
				scale = 1
			}
			return math.Max(0, 1.0-diff/(scale*10)), nil
		}
		if diff <= window {
			return 1.0, nil
		}
		decayRange := window * 10
		if decayRange <= 0 {
			decayRange = 1
		}
		score := 1.0 - (diff-window)/decayRange
		if score < 0 {
			score = 0
		}
		return score, nil
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}

// DefaultRegistry returns a registry pre-populated with "exact",
// "edit-distance", and "numeric-tolerance" (using permissive defaults
// of 0 absolute / 1% relative tolerance — callers needing a different
// window should register their own "numeric-tolerance" or a
// differently-named comparator and point x-comparator at it).
func DefaultRegistry() *domain.Registry {
	r := domain.NewRegistry()
	r.Register("exact", Exact)
	r.Register("edit-distance", EditDistance)
	r.Register("numeric-tolerance", NumericTolerance(0, 0.01))
	return r
}
