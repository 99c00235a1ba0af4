// Package openapi emits the type graph as the components section of an
// OpenAPI 3 document, one schema per named type.
package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

const (
	specVersion    = "3.0.3"
	defaultTitle   = "Generated Schema"
	defaultVersion = "0.1.0"
	unitName       = "components"
	schemaRefBase  = "#/components/schemas/"

	alphaPattern   = "^[A-Za-z]+$"
	numericPattern = "^[0-9]+$"
)

// Emitter serializes the graph through kin-openapi document types, so the
// output stays structurally valid OpenAPI.
type Emitter struct{}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the openapi emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return "openapi"
}

func (e *Emitter) ContentType() string {
	return "application/yaml"
}

func (e *Emitter) FileExtension() string {
	return ".yaml"
}

// Emit produces a single components unit holding the whole document.
func (e *Emitter) Emit(ctx context.Context, graph *typegraph.Graph, options emit.Options) ([]emit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, errors.New("openapi emitter: graph is nil")
	}

	title := options.Title
	if title == "" {
		title = defaultTitle
	}

	doc := &openapi3.T{
		OpenAPI: specVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: defaultVersion,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	for _, td := range graph.Types() {
		name, ref, err := componentFor(td)
		if err != nil {
			return nil, fmt.Errorf("openapi emitter: %w", err)
		}
		doc.Components.Schemas[name] = ref
	}

	payload, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi emitter: marshal document: %w", err)
	}
	return []emit.Unit{{Name: unitName, Body: payload}}, nil
}

// componentFor builds the components.schemas entry for one named type.
func componentFor(td typegraph.TypeDescriptor) (string, *openapi3.SchemaRef, error) {
	switch t := td.(type) {
	case *typegraph.Object:
		ref, err := objectSchema(t)
		if err != nil {
			return "", nil, err
		}
		return t.Name, ref, nil
	case *typegraph.Enum:
		return t.Name, enumSchema(t), nil
	case *typegraph.Alias:
		ref, err := aliasSchema(t)
		if err != nil {
			return "", nil, err
		}
		return t.Name, ref, nil
	default:
		return "", nil, fmt.Errorf("unsupported top-level descriptor %T", td)
	}
}

func objectSchema(obj *typegraph.Object) (*openapi3.SchemaRef, error) {
	schema := &openapi3.Schema{
		Type:        &openapi3.Types{"object"},
		Description: emit.SanitizeDescription(obj.Description),
		Properties:  openapi3.Schemas{},
	}

	for _, field := range obj.Fields {
		property, err := fieldSchema(field)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", obj.Name, err)
		}
		schema.Properties[field.Name] = property
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return openapi3.NewSchemaRef("", schema), nil
}

func enumSchema(enum *typegraph.Enum) *openapi3.SchemaRef {
	values := make([]any, 0, len(enum.Values))
	for _, value := range enum.Values {
		values = append(values, value)
	}
	return openapi3.NewSchemaRef("", &openapi3.Schema{
		Type:        &openapi3.Types{"string"},
		Description: emit.SanitizeDescription(enum.Description),
		Enum:        values,
	})
}

func aliasSchema(alias *typegraph.Alias) (*openapi3.SchemaRef, error) {
	target, err := typeSchema(alias.Target)
	if err != nil {
		return nil, fmt.Errorf("alias %q: %w", alias.Name, err)
	}

	description := emit.SanitizeDescription(alias.Description)
	if description == "" {
		return target, nil
	}
	if target.Ref != "" {
		// $ref siblings are ignored in OpenAPI 3.0, so the description needs
		// an allOf wrapper.
		return openapi3.NewSchemaRef("", &openapi3.Schema{
			Description: description,
			AllOf:       openapi3.SchemaRefs{target},
		}), nil
	}
	target.Value.Description = description
	return target, nil
}

// typeSchema maps a descriptor used in a type position: named types become
// component references, structural types inline.
func typeSchema(td typegraph.TypeDescriptor) (*openapi3.SchemaRef, error) {
	switch t := td.(type) {
	case *typegraph.Scalar:
		return openapi3.NewSchemaRef("", scalarSchema(t)), nil
	case *typegraph.Object:
		return openapi3.NewSchemaRef(schemaRefBase+t.Name, nil), nil
	case *typegraph.Enum:
		return openapi3.NewSchemaRef(schemaRefBase+t.Name, nil), nil
	case *typegraph.Alias:
		return openapi3.NewSchemaRef(schemaRefBase+t.Name, nil), nil
	case *typegraph.List:
		items, err := typeSchema(t.Elem)
		if err != nil {
			return nil, err
		}
		return openapi3.NewSchemaRef("", &openapi3.Schema{
			Type:  &openapi3.Types{"array"},
			Items: items,
		}), nil
	case *typegraph.Any:
		return openapi3.NewSchemaRef("", openapi3.NewSchema()), nil
	default:
		return nil, fmt.Errorf("unresolved type descriptor %T", td)
	}
}

func scalarSchema(scalar *typegraph.Scalar) *openapi3.Schema {
	var kind string
	switch scalar.Primitive {
	case typegraph.ScalarString:
		kind = "string"
	case typegraph.ScalarInteger:
		kind = "integer"
	case typegraph.ScalarNumber:
		kind = "number"
	case typegraph.ScalarBoolean:
		kind = "boolean"
	}
	return &openapi3.Schema{Type: &openapi3.Types{kind}}
}

// fieldSchema builds one property schema, folding the field's constraint
// directives and description in. Constraints on a referenced named type wrap
// the reference in allOf, keeping the $ref intact.
func fieldSchema(field typegraph.Field) (*openapi3.SchemaRef, error) {
	base, err := typeSchema(field.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}

	description := emit.SanitizeDescription(field.Description)
	if len(field.Constraints) == 0 && description == "" {
		return base, nil
	}

	if base.Ref != "" {
		wrapper := &openapi3.Schema{
			Description: description,
			AllOf:       openapi3.SchemaRefs{base},
		}
		applyConstraints(wrapper, field.Constraints)
		return openapi3.NewSchemaRef("", wrapper), nil
	}

	base.Value.Description = description
	applyConstraints(base.Value, field.Constraints)
	return base, nil
}

// applyConstraints translates directives into their OpenAPI keywords.
// Directives apply in order; a later pattern-bearing directive replaces an
// earlier one.
func applyConstraints(schema *openapi3.Schema, directives []typegraph.ConstraintDirective) {
	for _, directive := range directives {
		switch directive.Predicate {
		case typegraph.PredicateIsAlpha:
			schema.Pattern = alphaPattern
		case typegraph.PredicateIsNumeric:
			schema.Pattern = numericPattern
		case typegraph.PredicateMinLength:
			schema.MinLength = uint64(directive.IntArg)
		case typegraph.PredicateMaxLength:
			bound := uint64(directive.IntArg)
			schema.MaxLength = &bound
		case typegraph.PredicateRegex:
			schema.Pattern = directive.StringArg
		}
	}
}
