package schemagen

import (
	"io/fs"

	"github.com/goliatone/go-schemagen/pkg/emitters/dart"
)

// EmbeddedTemplates exposes the built-in dart emitter templates so callers
// can reuse or extend them without importing the emitter package directly.
func EmbeddedTemplates() fs.FS {
	return dart.TemplatesFS()
}
