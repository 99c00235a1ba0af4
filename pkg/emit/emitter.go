// Package emit defines the output side of the pipeline: emitters turn a
// resolved type graph into named output units, sinks place those units, and
// the registry makes emitters discoverable by name.
package emit

import (
	"context"

	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// Unit is one self-contained output artifact: a named body with no placement
// information. Physical paths, extensions, and overwrite policy belong to
// sinks.
type Unit struct {
	Name string
	Body []byte
}

// Clone returns a deep copy so callers can hold units beyond the producer's
// lifetime.
func (u Unit) Clone() Unit {
	return Unit{Name: u.Name, Body: append([]byte(nil), u.Body...)}
}

// Emitter converts a sealed type graph into output units. Implementations
// must be deterministic: the same graph and options yield byte-identical
// units in the same order on every call.
type Emitter interface {
	// Name is the registry key, unique per emitter.
	Name() string
	// ContentType describes the produced payloads.
	ContentType() string
	// FileExtension suggests a file suffix for sinks, including the dot.
	FileExtension() string
	Emit(ctx context.Context, graph *typegraph.Graph, options Options) ([]Unit, error)
}

// Options carries per-run emission inputs supplied by the caller.
type Options struct {
	// Package qualifies import references between emitted units, for targets
	// that support package-qualified imports. Emitters fall back to relative
	// references when empty.
	Package string
	// Title labels document-style outputs such as API specifications.
	Title string
}
