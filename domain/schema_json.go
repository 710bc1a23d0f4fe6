package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// schemaEnvelope mirrors the JSON-Schema-like exchange format of §6: a
// "type" discriminator, "properties" for records, "items" for lists,
// and the x- vendor-extension keys for comparator configuration.
type schemaEnvelope struct {
	Name       string                     `json:"name,omitempty"`
	Type       string                     `json:"type"`
	Properties map[string]schemaEnvelope  `json:"properties,omitempty"`
	// PropertyOrder preserves declared field order; JSON object key
	// order is not guaranteed by encoding/json, so callers that care
	// about order should supply it explicitly (falls back to sorted
	// names otherwise — see SchemaFromJSON).
	PropertyOrder []string        `json:"x-property-order,omitempty"`
	Items         *schemaEnvelope `json:"items,omitempty"`

	XComparator         string   `json:"x-comparator,omitempty"`
	XThreshold          *float64 `json:"x-threshold,omitempty"`
	XWeight             *float64 `json:"x-weight,omitempty"`
	XClipUnderThreshold *bool    `json:"x-clip-under-threshold,omitempty"`
	XAggregate          *bool    `json:"x-aggregate,omitempty"`
	XMatchThreshold     *float64 `json:"x-match-threshold,omitempty"`
}

var typeToKind = map[string]FieldKind{
	"string":  KindString,
	"integer": KindInt,
	"number":  KindFloat,
	"boolean": KindBool,
	"object":  KindRecord,
	"array":   KindListPrim, // refined to KindListRecord if items is an object
}

// SchemaFromJSON decodes a §6 JSON-Schema-like document into a Schema,
// validating every comparator name against registry and rejecting
// unrecognized declared types (§6: "The engine MUST reject a schema
// whose declared types are unrecognized or whose comparator names are
// not in the registry"). Nested "object"/"array of object" properties
// recurse, building the schema tree; reference cycles are impossible to
// express in this document shape (every nested schema is inlined), so
// no cycle check is needed here.
func SchemaFromJSON(data []byte, registry *Registry) (*Schema, error) {
	var env schemaEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, NewSchemaError("invalid schema document", err)
	}
	if env.Type != "object" {
		return nil, NewSchemaError(fmt.Sprintf("root schema must be type object, got %q", env.Type), nil)
	}
	return decodeObjectSchema(env, registry)
}

func decodeObjectSchema(env schemaEnvelope, registry *Registry) (*Schema, error) {
	schema := &Schema{
		Name:           env.Name,
		MatchThreshold: DefaultMatchThreshold,
	}
	if env.XMatchThreshold != nil {
		schema.MatchThreshold = *env.XMatchThreshold
	}

	names := env.PropertyOrder
	if len(names) == 0 {
		for name := range env.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		propEnv, ok := env.Properties[name]
		if !ok {
			return nil, NewSchemaError(fmt.Sprintf("x-property-order names unknown property %q", name), nil)
		}
		field, err := decodeField(name, propEnv, registry)
		if err != nil {
			return nil, err
		}
		schema.Fields = append(schema.Fields, field)
	}
	return schema, nil
}

func decodeField(name string, env schemaEnvelope, registry *Registry) (FieldDescriptor, error) {
	if env.Type == "" {
		return FieldDescriptor{}, NewSchemaError(fmt.Sprintf("field %q missing type", name), nil)
	}

	var ft FieldType
	switch env.Type {
	case "string", "integer", "number", "boolean":
		ft.Kind = typeToKind[env.Type]
	case "object":
		sub, err := decodeObjectSchema(env, registry)
		if err != nil {
			return FieldDescriptor{}, err
		}
		ft.Kind = KindRecord
		ft.Sub = sub
	case "array":
		if env.Items == nil {
			return FieldDescriptor{}, NewSchemaError(fmt.Sprintf("field %q is an array with no items", name), nil)
		}
		switch env.Items.Type {
		case "string", "integer", "number", "boolean":
			ft.Kind = KindListPrim
			ft.Elem = typeToKind[env.Items.Type]
		case "object":
			sub, err := decodeObjectSchema(*env.Items, registry)
			if err != nil {
				return FieldDescriptor{}, err
			}
			// x-match-threshold set on the list field itself applies to
			// its element schema.
			if env.XMatchThreshold != nil {
				sub.MatchThreshold = *env.XMatchThreshold
			}
			ft.Kind = KindListRecord
			ft.Sub = sub
		default:
			return FieldDescriptor{}, NewSchemaError(fmt.Sprintf("field %q has unrecognized item type %q", name, env.Items.Type), nil)
		}
	default:
		return FieldDescriptor{}, NewSchemaError(fmt.Sprintf("field %q has unrecognized type %q", name, env.Type), nil)
	}
	cfg := FieldConfig{ComparatorName: env.XComparator}
	if env.XThreshold != nil {
		cfg = cfg.WithThreshold(*env.XThreshold)
	}
	if env.XWeight != nil {
		cfg = cfg.WithWeight(*env.XWeight)
	}
	if env.XClipUnderThreshold != nil {
		cfg.ClipUnderThreshold = *env.XClipUnderThreshold
	}
	if env.XAggregate != nil {
		cfg = cfg.WithIncludeInAggregate(*env.XAggregate)
	}
	cfg = ResolveFieldConfig(ft.Kind, cfg)

	if cfg.ComparatorName == "" && ft.Kind.IsPrimitive() {
		cfg.ComparatorName = DefaultComparatorName(ft.Kind)
	}
	if ft.Kind.IsPrimitive() && registry != nil {
		if _, ok := registry.Lookup(cfg.ComparatorName); !ok {
			return FieldDescriptor{}, NewUnknownComparatorError(cfg.ComparatorName)
		}
	}

	return FieldDescriptor{Name: name, Type: ft, Config: cfg}, nil
}
