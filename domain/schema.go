package domain

// FieldKind enumerates the declared_type variants of §3: primitives by
// subtype, a nested record, an order-irrelevant list of primitives, and
// a list of nested records matched by assignment. Optional is a wrapper
// kind rather than a sibling — see FieldType.Optional.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindBool
	KindRecord
	KindListPrim
	KindListRecord
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindRecord:
		return "record"
	case KindListPrim:
		return "list<prim>"
	case KindListRecord:
		return "list<record>"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether k is one of the scalar kinds.
func (k FieldKind) IsPrimitive() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool:
		return true
	default:
		return false
	}
}

// FieldType describes a field's declared type. For KindListPrim, Elem
// names the primitive element kind. For KindRecord and KindListRecord,
// Sub names the element schema. Optional marks Optional(t) (§3) — a
// presentational wrapper; every field already tolerates null-equivalence
// uniformly, so Optional never changes dispatch behavior, only documents
// intent on the schema.
type FieldType struct {
	Kind     FieldKind
	Elem     FieldKind // valid when Kind == KindListPrim
	Sub      *Schema   // valid when Kind == KindRecord or KindListRecord
	Optional bool
}

// FieldConfig holds per-field comparison configuration (§3 cfg).
type FieldConfig struct {
	ComparatorName      string
	Threshold           float64
	Weight              float64
	ClipUnderThreshold  bool
	IncludeInAggregate  bool
	thresholdSet        bool
	weightSet           bool
	includeAggregateSet bool
}

// DefaultThresholdFor returns the zero-value default classification
// threshold for a field of the given kind: 1.0 for booleans (must match
// exactly by default), 0.5 otherwise (§3).
func DefaultThresholdFor(kind FieldKind) float64 {
	if kind == KindBool {
		return 1.0
	}
	return 0.5
}

// ResolveFieldConfig fills in unset config fields with the type-aware
// defaults described in §3 and §4.3. Comparator selection by declared
// type happens in the registry lookup step, not here — this only fixes
// numeric defaults and flags.
func ResolveFieldConfig(kind FieldKind, cfg FieldConfig) FieldConfig {
	out := cfg
	if !cfg.thresholdSet {
		out.Threshold = DefaultThresholdFor(kind)
	}
	if !cfg.weightSet {
		out.Weight = 1.0
	}
	if !cfg.includeAggregateSet {
		out.IncludeInAggregate = true
	}
	return out
}

// WithThreshold returns cfg with Threshold set explicitly (marks it as
// having been set, so ResolveFieldConfig will not override it).
func (cfg FieldConfig) WithThreshold(t float64) FieldConfig {
	cfg.Threshold = t
	cfg.thresholdSet = true
	return cfg
}

// WithWeight returns cfg with Weight set explicitly.
func (cfg FieldConfig) WithWeight(w float64) FieldConfig {
	cfg.Weight = w
	cfg.weightSet = true
	return cfg
}

// WithIncludeInAggregate returns cfg with IncludeInAggregate set explicitly.
func (cfg FieldConfig) WithIncludeInAggregate(b bool) FieldConfig {
	cfg.IncludeInAggregate = b
	cfg.includeAggregateSet = true
	return cfg
}

// FieldDescriptor is one ordered entry of a record schema (§3: {name,
// declared_type, cfg}).
type FieldDescriptor struct {
	Name   string
	Type   FieldType
	Config FieldConfig
}

// Schema is a named record type: an ordered list of field descriptors
// plus the match_threshold used when this schema is the element type of
// a record list (§3, §4.7). Nested schemas form a tree (no cycles are
// permitted; SchemaFromJSON cannot produce one, since every nested schema
// is inlined in its document, and no code checks hand-built schemas).
type Schema struct {
	Name           string
	Fields         []FieldDescriptor
	MatchThreshold float64
}

// DefaultMatchThreshold is τ's default value (§3).
const DefaultMatchThreshold = 0.7

// Field returns the descriptor for name and whether it exists.
func (s *Schema) Field(name string) (FieldDescriptor, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// EffectiveMatchThreshold returns s.MatchThreshold, or the default if s
// left it at the zero value.
func (s *Schema) EffectiveMatchThreshold() float64 {
	if s.MatchThreshold == 0 {
		return DefaultMatchThreshold
	}
	return s.MatchThreshold
}

// DefaultComparatorName returns the §4.3 default-by-type comparator name
// for a field whose config did not specify one explicitly.
func DefaultComparatorName(kind FieldKind) string {
	switch kind {
	case KindString:
		return "edit-distance"
	case KindInt, KindFloat:
		return "numeric-tolerance"
	case KindBool:
		return "exact"
	case KindRecord:
		return "structural"
	default:
		return "exact"
	}
}
