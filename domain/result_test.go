package domain

import "testing"

func TestCountsAddKeepsFPInvariant(t *testing.T) {
	var c Counts
	c.Add(CountsForLabel("TP"))
	c.Add(CountsForLabel("FD"))
	c.Add(CountsForLabel("FA"))
	c.Add(CountsForLabel("FN"))

	if c.FP != c.FD+c.FA {
		t.Errorf("FP = %d, want FD+FA = %d", c.FP, c.FD+c.FA)
	}
	if c.Total() != 4 {
		t.Errorf("Total() = %d, want 4", c.Total())
	}
}

func TestCountsForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Counts
	}{
		{"TP", Counts{TP: 1}},
		{"TN", Counts{TN: 1}},
		{"FD", Counts{FD: 1, FP: 1}},
		{"FA", Counts{FA: 1, FP: 1}},
		{"FN", Counts{FN: 1}},
		{"unknown", Counts{}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := CountsForLabel(tt.label)
			if got != tt.want {
				t.Errorf("CountsForLabel(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestComputeDerived(t *testing.T) {
	c := Counts{TP: 6, TN: 2, FD: 1, FA: 1, FN: 2}
	c.FP = c.FD + c.FA

	d := ComputeDerived(c, false)
	wantPrecision := 6.0 / 8.0
	wantRecall := 6.0 / 8.0
	if d.Precision != wantPrecision {
		t.Errorf("Precision = %v, want %v", d.Precision, wantPrecision)
	}
	if d.Recall != wantRecall {
		t.Errorf("Recall = %v, want %v", d.Recall, wantRecall)
	}

	dFD := ComputeDerived(c, true)
	wantRecallFD := 6.0 / 9.0
	if dFD.Recall != wantRecallFD {
		t.Errorf("recall_with_fd = %v, want %v", dFD.Recall, wantRecallFD)
	}
}

func TestComputeDerivedZeroDenominators(t *testing.T) {
	d := ComputeDerived(Counts{}, false)
	if d.Precision != 0 || d.Recall != 0 || d.F1 != 0 || d.Accuracy != 0 {
		t.Errorf("all-zero counts should produce all-zero derived metrics, got %+v", d)
	}
}

func TestThresholdAppliedScore(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		threshold float64
		clip      bool
		want      float64
	}{
		{"above threshold, clip on", 0.8, 0.5, true, 0.8},
		{"below threshold, clip on", 0.3, 0.5, true, 0.0},
		{"below threshold, clip off", 0.3, 0.5, false, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThresholdAppliedScore(tt.raw, tt.threshold, tt.clip)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if label := Classify(0.5, 0.5); label != "TP" {
		t.Errorf("exact threshold should classify TP, got %q", label)
	}
	if label := Classify(0.49999999999, 0.5); label != "TP" {
		t.Errorf("within float tolerance should classify TP, got %q", label)
	}
	if label := Classify(0.3, 0.5); label != "FD" {
		t.Errorf("below threshold should classify FD, got %q", label)
	}
}

func TestNewLeaf(t *testing.T) {
	leaf := NewLeaf("TP", 0.9, 0.9, 2.0)
	if !leaf.Overall.AllFieldsMatched {
		t.Error("TP leaf should report AllFieldsMatched")
	}
	if leaf.Overall.Counts.TP != 1 {
		t.Errorf("TP leaf should have Counts.TP = 1, got %d", leaf.Overall.Counts.TP)
	}
	if leaf.Weight != 2.0 {
		t.Errorf("Weight = %v, want 2.0", leaf.Weight)
	}

	fd := NewLeaf("FD", 0.2, 0.0, 1.0)
	if fd.Overall.AllFieldsMatched {
		t.Error("FD leaf should not report AllFieldsMatched")
	}
}

func TestNodeAddFieldPreservesOrder(t *testing.T) {
	n := &Node{}
	n.AddField("b", NewLeaf("TP", 1, 1, 1))
	n.AddField("a", NewLeaf("TP", 1, 1, 1))

	want := []string{"b", "a"}
	if len(n.FieldOrder) != len(want) {
		t.Fatalf("FieldOrder length = %d, want %d", len(n.FieldOrder), len(want))
	}
	for i, name := range want {
		if n.FieldOrder[i] != name {
			t.Errorf("FieldOrder[%d] = %q, want %q", i, n.FieldOrder[i], name)
		}
	}
	if len(n.Fields) != 2 {
		t.Errorf("Fields should have 2 entries, got %d", len(n.Fields))
	}
}
