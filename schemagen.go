package schemagen

import (
	"context"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/orchestrator"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// Request describes one generation run; alias exported via the root package
// for convenience.
type Request = orchestrator.Request

// Options carries per-run emission inputs such as the target package
// identifier and document title.
type Options = emit.Options

// Unit is one named output artifact produced by an emitter.
type Unit = emit.Unit

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the schema source, compiles its declarations into a type
// graph, and emits output units using the named emitter (the default dart
// emitter when emitterName is empty). It is the simplest entry point for
// callers that just want generated code.
func Generate(ctx context.Context, source schema.Source, emitterName string, options ...orchestrator.Option) ([]emit.Unit, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:  source,
		Emitter: emitterName,
	})
}

// GenerateFromDocument emits units from a pre-loaded document, bypassing the
// loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc schema.Document, emitterName string, options ...orchestrator.Option) ([]emit.Unit, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Emitter:  emitterName,
	})
}

// CompileDocument resolves a schema source into its sealed type graph without
// emitting anything. Useful for inspection tooling.
func CompileDocument(ctx context.Context, source schema.Source, options ...orchestrator.Option) (*typegraph.Graph, error) {
	gen := orchestrator.New(options...)
	return gen.Compile(ctx, orchestrator.Request{Source: source})
}
