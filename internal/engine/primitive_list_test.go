package engine

import (
	"testing"

	"github.com/awslabs/stickler/domain"
)

func exactListDispatcher() *dispatcher {
	r := domain.NewRegistry()
	r.Register("exact", func(gt, pred interface{}) (float64, error) {
		if gt == pred {
			return 1.0, nil
		}
		return 0.0, nil
	})
	return &dispatcher{registry: r, opts: domain.DefaultOptions()}
}

func listFieldConfig() (domain.FieldType, domain.FieldConfig) {
	ft := domain.FieldType{Kind: domain.KindListPrim, Elem: domain.KindString}
	cfg := domain.ResolveFieldConfig(domain.KindString, domain.FieldConfig{ComparatorName: "exact"})
	return ft, cfg
}

func TestComparePrimitiveListBothNull(t *testing.T) {
	d := exactListDispatcher()
	ft, cfg := listFieldConfig()
	node, err := d.comparePrimitiveList(nil, nil, ft, cfg)
	if err != nil {
		t.Fatalf("comparePrimitiveList returned error: %v", err)
	}
	if !node.IsList {
		t.Error("IsList should be true")
	}
	if node.Overall.Counts.TN != 1 {
		t.Errorf("both empty lists should classify TN, got %+v", node.Overall.Counts)
	}
}

func TestComparePrimitiveListOneSideEmpty(t *testing.T) {
	d := exactListDispatcher()
	ft, cfg := listFieldConfig()

	fa, err := d.comparePrimitiveList(nil, []interface{}{"a", "b"}, ft, cfg)
	if err != nil {
		t.Fatalf("comparePrimitiveList returned error: %v", err)
	}
	if fa.Overall.Counts.FA != 2 {
		t.Errorf("gt empty should classify every pred item FA, got %+v", fa.Overall.Counts)
	}
	for _, nm := range fa.ListNonMatches {
		if nm.Kind != domain.NonMatchFA || nm.PredValue == "" {
			t.Errorf("non-match entry = %+v, want an FA with a pred value", nm)
		}
	}

	fn, err := d.comparePrimitiveList([]interface{}{"a"}, nil, ft, cfg)
	if err != nil {
		t.Fatalf("comparePrimitiveList returned error: %v", err)
	}
	if fn.Overall.Counts.FN != 1 {
		t.Errorf("pred empty should classify the gt item FN, got %+v", fn.Overall.Counts)
	}
}

func TestComparePrimitiveListExtraGTItemsAreFN(t *testing.T) {
	d := exactListDispatcher()
	ft, cfg := listFieldConfig()

	// "a" and "b" have a strictly better total match against each other
	// than against the extra rows, so the optimal assignment leaves
	// "extra1"/"extra2" unmatched regardless of tie-breaking.
	gt := []interface{}{"a", "b", "extra1", "extra2"}
	pred := []interface{}{"a", "b"}

	node, err := d.comparePrimitiveList(gt, pred, ft, cfg)
	if err != nil {
		t.Fatalf("comparePrimitiveList returned error: %v", err)
	}
	if node.Overall.Counts.TP != 2 {
		t.Errorf("TP = %d, want 2", node.Overall.Counts.TP)
	}
	if node.Overall.Counts.FN != 2 {
		t.Errorf("FN = %d, want 2", node.Overall.Counts.FN)
	}
	if node.Overall.Counts.FA != 0 {
		t.Errorf("FA = %d, want 0", node.Overall.Counts.FA)
	}
	wantRaw := 2.0 / 4.0
	if node.RawSimilarityScore != wantRaw {
		t.Errorf("RawSimilarityScore = %v, want %v", node.RawSimilarityScore, wantRaw)
	}
}

func TestComparePrimitiveListExtraPredItemsAreFA(t *testing.T) {
	d := exactListDispatcher()
	ft, cfg := listFieldConfig()

	gt := []interface{}{"a", "b"}
	pred := []interface{}{"a", "b", "extra1", "extra2"}

	node, err := d.comparePrimitiveList(gt, pred, ft, cfg)
	if err != nil {
		t.Fatalf("comparePrimitiveList returned error: %v", err)
	}
	if node.Overall.Counts.TP != 2 {
		t.Errorf("TP = %d, want 2", node.Overall.Counts.TP)
	}
	if node.Overall.Counts.FA != 2 {
		t.Errorf("FA = %d, want 2", node.Overall.Counts.FA)
	}
	if node.Overall.Counts.FN != 0 {
		t.Errorf("FN = %d, want 0", node.Overall.Counts.FN)
	}
}
