package schemagen

import (
	internalCompiler "github.com/goliatone/go-schemagen/internal/compiler"
	internalLoader "github.com/goliatone/go-schemagen/internal/schema/loader"
	internalParser "github.com/goliatone/go-schemagen/internal/schema/parser"
	pkgcompiler "github.com/goliatone/go-schemagen/pkg/compiler"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser() schema.Parser {
	return internalParser.New()
}

// NewCompiler constructs a compiler backed by the internal implementation.
func NewCompiler(options ...pkgcompiler.Option) pkgcompiler.Compiler {
	cfg := pkgcompiler.NewOptions(options...)
	return internalCompiler.New(cfg)
}
