package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalCompiler "github.com/goliatone/go-schemagen/internal/compiler"
	internalLoader "github.com/goliatone/go-schemagen/internal/schema/loader"
	internalParser "github.com/goliatone/go-schemagen/internal/schema/parser"
	pkgcompiler "github.com/goliatone/go-schemagen/pkg/compiler"
	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emitters/dart"
	"github.com/goliatone/go-schemagen/pkg/emitters/graphql"
	"github.com/goliatone/go-schemagen/pkg/emitters/openapi"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

const defaultEmitterName = "dart"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom document parser.
func WithParser(parser schema.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithCompiler injects a custom schema compiler.
func WithCompiler(compiler pkgcompiler.Compiler) Option {
	return func(o *Orchestrator) {
		o.compiler = compiler
	}
}

// WithRegistry injects an emitter registry.
func WithRegistry(registry *emit.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultEmitter overrides the emitter used when a request omits an
// explicit Emitter field.
func WithDefaultEmitter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultEmitter = name
	}
}

// Orchestrator coordinates the full pipeline from schema document to emitted
// units. It applies sensible defaults (built-in loader, parser, compiler,
// and emitters) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	loader          schema.Loader
	parser          schema.Parser
	compiler        pkgcompiler.Compiler
	registry        *emit.Registry
	defaultEmitter  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultEmitter: defaultEmitterName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate output from a schema
// document.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already hold the
	// payload.
	Document *schema.Document

	// Emitter names the emitter to use. If empty, the orchestrator falls back
	// to the configured default emitter.
	Emitter string

	// Options carries per-request emission inputs such as the target package
	// identifier. When omitted, emitters receive the zero-value struct.
	Options emit.Options

	// Sink receives every emitted unit when set. Units are returned either
	// way.
	Sink emit.Sink
}

// Generate executes the loader → parser → compiler → emitter sequence and
// returns the emitted units. Failures leave the sink untouched.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]emit.Unit, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	graph, err := o.compile(ctx, req)
	if err != nil {
		return nil, err
	}

	emitter, err := o.emitterFor(req.Emitter)
	if err != nil {
		return nil, err
	}

	units, err := emitter.Emit(ctx, graph, req.Options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emit units: %w", err)
	}

	if req.Sink != nil {
		for _, unit := range units {
			if err := req.Sink.Write(ctx, unit); err != nil {
				return nil, fmt.Errorf("orchestrator: write unit %q: %w", unit.Name, err)
			}
		}
	}
	return units, nil
}

// Compile runs the pipeline up to the sealed type graph, for callers that
// want to inspect a document without emitting anything.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (*typegraph.Graph, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}
	return o.compile(ctx, req)
}

func (o *Orchestrator) compile(ctx context.Context, req Request) (*typegraph.Graph, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	root, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse document: %w", err)
	}

	graph, err := o.compiler.Compile(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: compile document: %w", err)
	}
	return graph, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) emitterFor(name string) (emit.Emitter, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: emitter registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultEmitter
	}

	if target != "" {
		emitter, err := o.registry.Get(target)
		if err == nil {
			return emitter, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: emitter %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no emitters registered")
	}

	emitter, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emitter %q: %w", names[0], err)
	}
	return emitter, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New()
	}
	if o.compiler == nil {
		o.compiler = internalCompiler.New(pkgcompiler.NewOptions())
	}
	if o.registry == nil {
		o.registry = emit.NewRegistry()
		dartEmitter, err := dart.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default emitter: %w", err)
		} else {
			o.registry.MustRegister(dartEmitter)
		}
		o.registry.MustRegister(openapi.New())
		o.registry.MustRegister(graphql.New())
	}
	if o.defaultEmitter == "" {
		o.defaultEmitter = defaultEmitterName
	}

	o.defaultsApplied = true
}
