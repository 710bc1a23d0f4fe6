package domain

import "testing"

func TestDefaultThresholdFor(t *testing.T) {
	if got := DefaultThresholdFor(KindBool); got != 1.0 {
		t.Errorf("bool default threshold = %v, want 1.0", got)
	}
	for _, k := range []FieldKind{KindString, KindInt, KindFloat, KindRecord} {
		if got := DefaultThresholdFor(k); got != 0.5 {
			t.Errorf("%s default threshold = %v, want 0.5", k, got)
		}
	}
}

func TestResolveFieldConfigFillsDefaults(t *testing.T) {
	cfg := ResolveFieldConfig(KindString, FieldConfig{})
	if cfg.Threshold != 0.5 {
		t.Errorf("Threshold = %v, want 0.5", cfg.Threshold)
	}
	if cfg.Weight != 1.0 {
		t.Errorf("Weight = %v, want 1.0", cfg.Weight)
	}
	if !cfg.IncludeInAggregate {
		t.Error("IncludeInAggregate should default true")
	}
}

func TestResolveFieldConfigRespectsExplicitValues(t *testing.T) {
	cfg := FieldConfig{}.WithThreshold(0.9).WithWeight(3.0).WithIncludeInAggregate(false)
	resolved := ResolveFieldConfig(KindString, cfg)
	if resolved.Threshold != 0.9 {
		t.Errorf("Threshold = %v, want 0.9 (explicit value should survive)", resolved.Threshold)
	}
	if resolved.Weight != 3.0 {
		t.Errorf("Weight = %v, want 3.0", resolved.Weight)
	}
	if resolved.IncludeInAggregate {
		t.Error("explicit false IncludeInAggregate should not be overwritten by the default")
	}
}

func TestEffectiveMatchThreshold(t *testing.T) {
	var s Schema
	if got := s.EffectiveMatchThreshold(); got != DefaultMatchThreshold {
		t.Errorf("zero-value schema threshold = %v, want default %v", got, DefaultMatchThreshold)
	}
	s.MatchThreshold = 0.9
	if got := s.EffectiveMatchThreshold(); got != 0.9 {
		t.Errorf("explicit threshold = %v, want 0.9", got)
	}
}

func TestSchemaField(t *testing.T) {
	s := Schema{Fields: []FieldDescriptor{
		{Name: "a", Type: FieldType{Kind: KindString}},
		{Name: "b", Type: FieldType{Kind: KindInt}},
	}}
	f, ok := s.Field("b")
	if !ok || f.Type.Kind != KindInt {
		t.Errorf("Field(%q) = %+v, %v; want KindInt field", "b", f, ok)
	}
	if _, ok := s.Field("missing"); ok {
		t.Error("Field of an undeclared name should report false")
	}
}

func TestDefaultComparatorName(t *testing.T) {
	tests := map[FieldKind]string{
		KindString: "edit-distance",
		KindInt:    "numeric-tolerance",
		KindFloat:  "numeric-tolerance",
		KindBool:   "exact",
		KindRecord: "structural",
	}
	for kind, want := range tests {
		if got := DefaultComparatorName(kind); got != want {
			t.Errorf("DefaultComparatorName(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestFieldKindIsPrimitive(t *testing.T) {
	primitives := []FieldKind{KindString, KindInt, KindFloat, KindBool}
	for _, k := range primitives {
		if !k.IsPrimitive() {
			t.Errorf("%s.IsPrimitive() = false, want true", k)
		}
	}
	nonPrimitives := []FieldKind{KindRecord, KindListPrim, KindListRecord}
	for _, k := range nonPrimitives {
		if k.IsPrimitive() {
			t.Errorf("%s.IsPrimitive() = true, want false", k)
		}
	}
}
