// Package mcp exposes the comparison engine as an MCP tool, the same
// way the teacher's mcp package wraps its analysis use cases for a
// language-model client to call directly.
package mcp

import (
	"github.com/awslabs/stickler/internal/config"
	"github.com/awslabs/stickler/internal/engine"
	"github.com/awslabs/stickler/internal/similarity"
	"github.com/awslabs/stickler/internal/telemetry"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	engine *engine.Engine
	config *config.Config
}

// NewDependencies constructs the dependency set with sane defaults: the
// built-in comparator registry tuned by cfg.Similarity, and an engine
// bound to it.
func NewDependencies(cfg *config.Config) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	registry := similarity.DefaultRegistry()
	registry.Register("numeric-tolerance", similarity.NumericTolerance(
		cfg.Similarity.NumericAbsTolerance, cfg.Similarity.NumericRelTolerance))

	return &Dependencies{
		engine: engine.New(registry).WithLogger(telemetry.New()),
		config: cfg,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// Engine exposes the comparison engine built from this dependency set.
func (d *Dependencies) Engine() *engine.Engine {
	return d.engine
}
