package dart

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed runtime/*.dart
var embeddedRuntime embed.FS

// TemplatesFS exposes the embedded template bundle so callers can eject the
// built-in templates and supply customized copies.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// RuntimeFS exposes the shared validation runtime sources emitted alongside
// the generated types.
func RuntimeFS() fs.FS {
	return embeddedRuntime
}
