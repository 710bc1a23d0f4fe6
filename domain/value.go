package domain

// Record is a schema-conforming value: a mapping from field name to value.
// Values are the dynamic JSON-ish shapes a decoded record can hold: nil,
// string, float64 (all numbers — JSON does not distinguish int/float),
// bool, Record (nested), or []interface{} (a list of primitives or of
// Records). Missing keys and null values are both treated as absent.
type Record map[string]interface{}

// Get returns the value stored under name, or nil if the field is absent.
// Absent and nil are never distinguished (§3 Null equivalence).
func (r Record) Get(name string) interface{} {
	if r == nil {
		return nil
	}
	return r[name]
}

// IsNullEquivalent reports whether v is null-equivalent: nil, "", an
// empty list, or an empty record. A record with only null-equivalent
// fields is NOT collapsed to null-equivalent — only a literal empty map
// (or empty Record) is.
func IsNullEquivalent(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case Record:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	default:
		return false
	}
}

// AsRecord coerces v to a Record, treating any null-equivalent value
// (including a bare map[string]interface{} produced by encoding/json) as
// an empty Record rather than failing.
func AsRecord(v interface{}) Record {
	switch t := v.(type) {
	case Record:
		return t
	case map[string]interface{}:
		return Record(t)
	default:
		return nil
	}
}

// AsList coerces v to a slice, treating any null-equivalent value as an
// empty list.
func AsList(v interface{}) []interface{} {
	switch t := v.(type) {
	case []interface{}:
		return t
	default:
		return nil
	}
}
