package similarity

import "testing"

func TestExact(t *testing.T) {
	tests := []struct {
		name     string
		gt, pred interface{}
		want     float64
	}{
		{"equal strings", "alice", "alice", 1.0},
		{"different strings", "alice", "bob", 0.0},
		{"equal bools", true, true, 1.0},
		{"equal numbers", 3.0, 3.0, 1.0},
		{"different numbers", 3.0, 4.0, 0.0},
		{"incomparable types", []interface{}{1}, []interface{}{1}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Exact(tt.gt, tt.pred)
			if err != nil {
				t.Fatalf("Exact returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exact(%v, %v) = %v, want %v", tt.gt, tt.pred, got, tt.want)
			}
		})
	}
}

func TestEditDistance(t *testing.T) {
	got, err := EditDistance("kitten", "kitten")
	if err != nil || got != 1.0 {
		t.Errorf("identical strings: got (%v, %v), want (1.0, nil)", got, err)
	}

	got, err = EditDistance("", "")
	if err != nil || got != 1.0 {
		t.Errorf("two empty strings: got (%v, %v), want (1.0, nil)", got, err)
	}

	got, err = EditDistance("kitten", "sitting")
	if err != nil || got <= 0 || got >= 1 {
		t.Errorf("near-miss strings: got (%v, %v), want a score strictly between 0 and 1", got, err)
	}

	got, err = EditDistance(42.0, "x")
	if err != nil || got != 0.0 {
		t.Errorf("non-string input: got (%v, %v), want (0.0, nil)", got, err)
	}
}

func TestNumericTolerance(t *testing.T) {
	fn := NumericTolerance(0.5, 0.0)

	got, err := fn(10.0, 10.3)
	if err != nil || got != 1.0 {
		t.Errorf("within absolute tolerance: got (%v, %v), want (1.0, nil)", got, err)
	}

	got, err = fn(10.0, 10.0)
	if err != nil || got != 1.0 {
		t.Errorf("exact match: got (%v, %v), want (1.0, nil)", got, err)
	}

	got, err = fn(10.0, 100.0)
	if err != nil || got != 0.0 {
		t.Errorf("gross mismatch should decay to 0: got (%v, %v)", got, err)
	}

	got, err = fn(10.0, 11.0)
	if err != nil || got <= 0 || got >= 1 {
		t.Errorf("a near-miss beyond tolerance should decay, not cliff to 0: got (%v, %v)", got, err)
	}

	got, err = fn("not a number", 1.0)
	if err != nil || got != 0.0 {
		t.Errorf("non-numeric input: got (%v, %v), want (0.0, nil)", got, err)
	}
}

func TestNumericToleranceRelative(t *testing.T) {
	fn := NumericTolerance(0, 0.1)
	got, err := fn(100.0, 105.0)
	if err != nil || got != 1.0 {
		t.Errorf("within 10%% relative tolerance of 100: got (%v, %v), want (1.0, nil)", got, err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"exact", "edit-distance", "numeric-tolerance"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("DefaultRegistry should register %q", name)
		}
	}
}
