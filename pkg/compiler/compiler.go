// Package compiler exposes the public contract for resolving parsed schema
// documents into type graphs. The implementation lives under
// internal/compiler; construction helpers sit in the top-level schemagen
// package to avoid import cycles.
package compiler

import (
	"context"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// DefaultSectionKey names the top-level mapping that holds the type
// declarations of a document.
const DefaultSectionKey = "definitions"

// Compiler resolves a parsed document tree into a sealed type graph. A
// compilation is atomic per document: any error means no graph, so callers
// never observe partially resolved output. Forward references between
// declarations of the same document always resolve regardless of order.
type Compiler interface {
	Compile(ctx context.Context, root schema.Node) (*typegraph.Graph, error)
}

// Options configures compilation.
type Options struct {
	// SectionKey names the mapping that holds the named type declarations.
	// Defaults to DefaultSectionKey.
	SectionKey string
}

// Option mutates Options during construction.
type Option func(*Options)

// WithSectionKey overrides the declarations section name.
func WithSectionKey(key string) Option {
	return func(o *Options) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			o.SectionKey = trimmed
		}
	}
}

// NewOptions folds the provided options over the defaults.
func NewOptions(opts ...Option) Options {
	options := Options{SectionKey: DefaultSectionKey}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
