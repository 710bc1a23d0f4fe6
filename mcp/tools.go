package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers Stickler's MCP tools with s, dispatching to
// handlers bound to deps.
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	s.AddTool(mcp.NewTool("compare_records",
		mcp.WithDescription("Recursively compare a predicted record against a ground-truth reference under a schema, returning a weighted similarity score, a hierarchical confusion matrix, and a flattened list of disagreements"),
		mcp.WithObject("schema",
			mcp.Required(),
			mcp.Description("JSON-Schema-like document describing the record's fields, with x-comparator/x-threshold/x-weight/x-clip-under-threshold/x-aggregate/x-match-threshold vendor extensions")),
		mcp.WithObject("ground_truth",
			mcp.Required(),
			mcp.Description("The reference record")),
		mcp.WithObject("predicted",
			mcp.Required(),
			mcp.Description("The record being evaluated against ground_truth")),
		mcp.WithBoolean("include_confusion_matrix",
			mcp.Description("Include the hierarchical aggregate counts tree in the result (default: false)")),
		mcp.WithBoolean("document_non_matches",
			mcp.Description("Include the flattened non-match list in the result (default: false)")),
		mcp.WithBoolean("evaluator_format",
			mcp.Description("Re-shape the result as precision/recall/F1/accuracy plus anls_score (default: false)")),
	), deps.HandleCompareRecords)
}
