package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/awslabs/stickler/domain"
)

// HandleCompareRecords handles the compare_records tool: decodes the
// caller's schema document, runs one comparison, and returns the
// rendered result as JSON text.
func (d *Dependencies) HandleCompareRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	schemaArg, ok := args["schema"]
	if !ok {
		return mcp.NewToolResultError("schema parameter is required"), nil
	}
	schemaJSON, err := json.Marshal(schemaArg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid schema: %v", err)), nil
	}

	registry := d.engineRegistry()
	schema, err := domain.SchemaFromJSON(schemaJSON, registry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid schema: %v", err)), nil
	}

	gtArg, hasGT := args["ground_truth"]
	if !hasGT {
		return mcp.NewToolResultError("ground_truth parameter is required"), nil
	}
	gt, ok := asRecord(gtArg)
	if !ok {
		err := domain.NewTypeMismatchError("ground_truth does not conform to the schema's root record type", nil)
		return mcp.NewToolResultError(err.Error()), nil
	}
	predArg, hasPred := args["predicted"]
	if !hasPred {
		return mcp.NewToolResultError("predicted parameter is required"), nil
	}
	pred, ok := asRecord(predArg)
	if !ok {
		err := domain.NewTypeMismatchError("predicted does not conform to the schema's root record type", nil)
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := domain.DefaultOptions()
	if v, ok := args["include_confusion_matrix"].(bool); ok {
		opts.IncludeConfusionMatrix = v
	}
	if v, ok := args["document_non_matches"].(bool); ok {
		opts.DocumentNonMatches = v
	}
	if v, ok := args["evaluator_format"].(bool); ok {
		opts.EvaluatorFormat = v
	}

	root, err := d.engine.Compare(ctx, gt, pred, schema, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	rendered := domain.Render(root, opts)
	jsonData, err := json.Marshal(rendered)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// engineRegistry exposes the registry the engine was built with, so the
// handler can validate the caller's schema against the same comparator
// set Compare will use.
func (d *Dependencies) engineRegistry() *domain.Registry {
	return d.engine.Registry()
}

func asRecord(v interface{}) (domain.Record, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return domain.Record(m), true
}
