// Package compiler resolves parsed schema documents into sealed type graphs.
// Compilation runs in two passes: a shallow anchor pass that declares every
// named type so siblings can reference each other in any order, and a
// resolving pass that fills object fields, synthesizes nested types, and
// compiles validation constraints.
package compiler

import (
	"context"
	"fmt"

	pkgcompiler "github.com/goliatone/go-schemagen/pkg/compiler"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// Compiler implements the public compiler contract.
type Compiler struct {
	options pkgcompiler.Options
}

var _ pkgcompiler.Compiler = (*Compiler)(nil)

// New constructs a Compiler from pre-resolved options.
func New(options pkgcompiler.Options) *Compiler {
	if options.SectionKey == "" {
		options.SectionKey = pkgcompiler.DefaultSectionKey
	}
	return &Compiler{options: options}
}

// Compile resolves root into a type graph. Each call builds a fresh symbol
// table; documents never share resolution state.
func (c *Compiler) Compile(ctx context.Context, root schema.Node) (*typegraph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	section, err := c.declarations(root)
	if err != nil {
		return nil, err
	}

	table := typegraph.NewSymbolTable()
	if err := collectAnchors(table, section); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &resolver{table: table}
	if err := res.resolveAll(section); err != nil {
		return nil, err
	}

	return typegraph.NewGraph(table)
}

// declarations extracts the declarations section from the document root.
func (c *Compiler) declarations(root schema.Node) (*schema.Mapping, error) {
	if root == nil {
		return nil, &schema.MalformedDocumentError{Reason: "document is empty"}
	}
	top, ok := root.(*schema.Mapping)
	if !ok {
		return nil, &schema.MalformedDocumentError{Reason: "top-level node is not a mapping"}
	}

	node, ok := top.Get(c.options.SectionKey)
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("missing %q section", c.options.SectionKey),
		}
	}
	section, ok := node.(*schema.Mapping)
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("%q section is not a mapping", c.options.SectionKey),
		}
	}
	return section, nil
}
