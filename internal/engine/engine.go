// Package engine implements the comparison engine of §4.1: a single
// recursive traversal over a schema-bound record pair that produces a
// weighted similarity score, a hierarchical confusion matrix, and a
// flattened list of non-match records. The dispatcher, field,
// primitive-list, and record-list comparators, and the post-traversal
// metrics builder all live here; domain holds only the data model and
// the registry/schema contracts they operate on.
package engine

import (
	"context"

	"github.com/awslabs/stickler/domain"
	"github.com/awslabs/stickler/internal/telemetry"
)

// Engine drives comparisons against a fixed similarity registry. It
// holds no mutable state of its own — every comparison call is
// independent and safe to run concurrently with any other (§5).
type Engine struct {
	registry *domain.Registry
	logger   *telemetry.Logger
}

// New builds an Engine bound to registry. registry is held by
// reference for the engine's lifetime and is never mutated by it; the
// caller retains ownership (§5, §4.9 "Registry, not inheritance").
func New(registry *domain.Registry) *Engine {
	return &Engine{registry: registry, logger: telemetry.New()}
}

// Registry returns the similarity registry e was built with.
func (e *Engine) Registry() *domain.Registry {
	return e.registry
}

// WithLogger returns a copy of e that logs through logger instead of a
// freshly generated trace id, so a caller already holding a request
// -scoped Logger (e.g. an MCP tool handler) can correlate engine
// warnings with the rest of that request's log lines.
func (e *Engine) WithLogger(logger *telemetry.Logger) *Engine {
	out := *e
	out.logger = logger
	return &out
}

// Compare runs one recursive traversal over gt and pred against schema,
// returning the fully populated result tree (§3 Node). The returned
// tree always carries the complete internal data regardless of opts —
// call domain.Render(node, opts) to produce the shaped external result.
//
// Compare validates its preconditions before doing any comparison work:
// schema and registry must be non-nil, and every comparator name
// reachable from schema must resolve in registry (§6, §7 class 1). Data
// -level disagreements between gt and pred are never errors — they
// become FD/FA/FN classifications in the tree (§7 class 2).
func (e *Engine) Compare(ctx context.Context, gt, pred domain.Record, schema *domain.Schema, opts domain.Options) (*domain.Node, error) {
	if schema == nil {
		return nil, domain.NewSchemaError("schema is nil", nil)
	}
	if e.registry == nil {
		return nil, domain.NewInvalidInputError("registry is nil", nil)
	}
	if err := validateSchema(schema, e.registry); err != nil {
		return nil, err
	}

	d := &dispatcher{registry: e.registry, opts: opts, logger: e.logger}
	node, err := d.compareRecord(ctx, schema, gt, pred)
	if err != nil {
		return nil, err
	}

	rollupAggregate(node, opts)
	if opts.DocumentNonMatches {
		node.NonMatches = collectNonMatches(node)
	}
	return node, nil
}

// validateSchema walks the schema tree (record and record-list element
// schemas) checking that every primitive field's comparator name
// resolves in registry, per §6's "MUST reject" clause. It does not
// attempt cycle detection: schema trees built via SchemaFromJSON cannot
// contain cycles (every nested schema is inlined), and hand-built
// Schema values are the caller's responsibility per §4.9's "DAG at
// worst" note.
func validateSchema(schema *domain.Schema, registry *domain.Registry) error {
	for _, f := range schema.Fields {
		switch f.Type.Kind {
		case domain.KindRecord:
			if err := validateSchema(f.Type.Sub, registry); err != nil {
				return err
			}
		case domain.KindListRecord:
			if err := validateSchema(f.Type.Sub, registry); err != nil {
				return err
			}
		default:
			if f.Type.Kind.IsPrimitive() {
				if _, ok := registry.Lookup(f.Config.ComparatorName); !ok {
					return domain.NewUnknownComparatorError(f.Config.ComparatorName)
				}
			}
		}
	}
	return nil
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return domain.NewCancelledError(ctx.Err())
	default:
		return nil
	}
}
