package schema

import "context"

// Parser turns a loaded document into its node tree. Implementations report
// unparseable payloads and non-mapping top levels as MalformedDocumentError.
// The YAML implementation lives under internal/schema/parser and is
// constructed through the top-level schemagen package.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Node, error)
}
