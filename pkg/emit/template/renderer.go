// Package template defines the engine seam emitters render through, keeping
// emitter code independent of the concrete template library.
package template

import (
	"io"
)

// TemplateRenderer is the rendering contract used by template-backed
// emitters. Render dispatches on its argument: inline template content
// renders directly, anything else is treated as a template name.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
