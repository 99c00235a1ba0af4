// Package dart is the canonical emitter: it turns a sealed type graph into
// one Dart source unit per named type plus the shared validation runtime.
package dart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emit/template"
	"github.com/goliatone/go-schemagen/pkg/emit/template/pongo"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Emitter renders named types through the embedded templates and appends the
// static validation runtime.
type Emitter struct {
	templates template.TemplateRenderer
}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the dart emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("dart emitter: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Emitter{templates: renderer}, nil
}

func (e *Emitter) Name() string {
	return "dart"
}

func (e *Emitter) ContentType() string {
	return "application/vnd.dart"
}

func (e *Emitter) FileExtension() string {
	return ".dart"
}

// Emit produces one unit per named type in graph order, then the constraints
// and validators runtime units. Any failure yields zero units.
func (e *Emitter) Emit(ctx context.Context, graph *typegraph.Graph, options emit.Options) ([]emit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, errors.New("dart emitter: graph is nil")
	}
	if e.templates == nil {
		return nil, errors.New("dart emitter: template renderer is nil")
	}

	units := make([]emit.Unit, 0, graph.Len()+2)
	claimed := map[string]string{
		constraintsUnit: "the shared runtime",
		validatorsUnit:  "the shared runtime",
	}

	for _, td := range graph.Types() {
		var (
			name         string
			templatePath string
			view         map[string]any
			err          error
		)
		switch t := td.(type) {
		case *typegraph.Object:
			name = t.Name
			templatePath = "templates/class.tpl"
			view, err = classView(t, options)
		case *typegraph.Enum:
			name = t.Name
			templatePath = "templates/enum.tpl"
			view = enumView(t)
		case *typegraph.Alias:
			name = t.Name
			templatePath = "templates/alias.tpl"
			view, err = aliasView(t, options)
		default:
			return nil, fmt.Errorf("dart emitter: unsupported top-level descriptor %T", td)
		}
		if err != nil {
			return nil, fmt.Errorf("dart emitter: %w", err)
		}

		unitName := typegraph.FileName(name)
		if owner, taken := claimed[unitName]; taken {
			return nil, fmt.Errorf("dart emitter: type %q maps to unit %q already used by %s", name, unitName, owner)
		}
		claimed[unitName] = fmt.Sprintf("type %q", name)

		body, err := e.templates.RenderTemplate(templatePath, view)
		if err != nil {
			return nil, fmt.Errorf("dart emitter: render %q: %w", name, err)
		}
		units = append(units, emit.Unit{Name: unitName, Body: normalize(body)})
	}

	runtime, err := runtimeUnits()
	if err != nil {
		return nil, err
	}
	return append(units, runtime...), nil
}

// runtimeUnits reads the static runtime sources shared by every generated
// class.
func runtimeUnits() ([]emit.Unit, error) {
	units := make([]emit.Unit, 0, 2)
	for _, stem := range []string{constraintsUnit, validatorsUnit} {
		body, err := fs.ReadFile(embeddedRuntime, "runtime/"+stem+".dart")
		if err != nil {
			return nil, fmt.Errorf("dart emitter: read runtime asset %q: %w", stem, err)
		}
		units = append(units, emit.Unit{Name: stem, Body: body})
	}
	return units, nil
}

// normalize trims template whitespace artifacts down to a single trailing
// newline.
func normalize(body string) []byte {
	return []byte(strings.TrimRight(body, "\n") + "\n")
}
