// Package graphql emits the type graph as a GraphQL schema definition
// document. Validation directives ride along as a repeatable @constraint
// field directive so SDL consumers keep the full rule set.
package graphql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

const (
	unitName = "schema"

	constraintDirective = "directive @constraint(predicate: String!, argument: String) repeatable on FIELD_DEFINITION"

	// anyScalar is declared once at the end of the document when some field
	// uses the unconstrained element type.
	anyScalar = "Any"
)

// Emitter writes one SDL unit covering the whole graph.
type Emitter struct{}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the graphql emitter.
func New() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Name() string {
	return "graphql"
}

func (e *Emitter) ContentType() string {
	return "application/graphql"
}

func (e *Emitter) FileExtension() string {
	return ".graphql"
}

// Emit renders the directive header, then one block per named type in graph
// order, then the Any scalar when something used it.
func (e *Emitter) Emit(ctx context.Context, graph *typegraph.Graph, options emit.Options) ([]emit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, errors.New("graphql emitter: graph is nil")
	}

	w := newSDLWriter()
	w.emitf("%s\n", constraintDirective)

	usesAny := false
	for _, td := range graph.Types() {
		switch t := td.(type) {
		case *typegraph.Enum:
			emitEnum(w, t)
		case *typegraph.Object:
			used, err := emitType(w, t)
			if err != nil {
				return nil, fmt.Errorf("graphql emitter: %w", err)
			}
			usesAny = usesAny || used
		case *typegraph.Alias:
			if err := emitAlias(w, t); err != nil {
				return nil, fmt.Errorf("graphql emitter: %w", err)
			}
		default:
			return nil, fmt.Errorf("graphql emitter: unsupported top-level descriptor %T", td)
		}
	}

	if usesAny {
		w.emitf("\nscalar %s\n", anyScalar)
	}

	return []emit.Unit{{Name: unitName, Body: []byte(w.String())}}, nil
}

func emitEnum(w *sdlWriter, enum *typegraph.Enum) {
	w.emitf("\n")
	emitDescription(w, "", enum.Description)
	w.emitf("enum %s {\n", enum.Name)
	for _, value := range enum.Values {
		w.emitf("  %s\n", value)
	}
	w.emitf("}\n")
}

func emitType(w *sdlWriter, obj *typegraph.Object) (bool, error) {
	w.emitf("\n")
	emitDescription(w, "", obj.Description)
	w.emitf("type %s {\n", obj.Name)

	usesAny := false
	for _, field := range obj.Fields {
		ref, used, err := typeRef(field.Type)
		if err != nil {
			return false, fmt.Errorf("field %q of %q: %w", field.Name, obj.Name, err)
		}
		usesAny = usesAny || used

		required := ""
		if field.Required {
			required = "!"
		}
		emitDescription(w, "  ", field.Description)
		w.emitf("  %s: %s%s%s\n", typegraph.FieldName(field.Name), ref, required, directivesFor(field.Constraints))
	}
	w.emitf("}\n")
	return usesAny, nil
}

// emitAlias declares scalar-backed aliases as custom scalars. Aliases of
// composite types leave no block behind; SDL cannot rename those, so field
// references pierce through to the target instead.
func emitAlias(w *sdlWriter, alias *typegraph.Alias) error {
	if _, ok := alias.Target.(*typegraph.Scalar); !ok {
		return nil
	}
	w.emitf("\n")
	emitDescription(w, "", alias.Description)
	w.emitf("scalar %s\n", alias.Name)
	return nil
}

func emitDescription(w *sdlWriter, indent, raw string) {
	description := emit.SanitizeDescription(raw)
	if description == "" {
		return
	}
	w.emitf("%s\"%s\"\n", indent, escapeSDL(description))
}

// typeRef maps a descriptor onto its SDL type reference and reports whether
// the Any scalar was needed.
func typeRef(td typegraph.TypeDescriptor) (string, bool, error) {
	switch t := td.(type) {
	case *typegraph.Scalar:
		switch t.Primitive {
		case typegraph.ScalarString:
			return "String", false, nil
		case typegraph.ScalarInteger:
			return "Int", false, nil
		case typegraph.ScalarNumber:
			return "Float", false, nil
		case typegraph.ScalarBoolean:
			return "Boolean", false, nil
		default:
			return "", false, fmt.Errorf("unknown scalar kind %q", t.Primitive)
		}
	case *typegraph.Object:
		return t.Name, false, nil
	case *typegraph.Enum:
		return t.Name, false, nil
	case *typegraph.Alias:
		if _, ok := t.Target.(*typegraph.Scalar); ok {
			return t.Name, false, nil
		}
		return typeRef(t.Target)
	case *typegraph.List:
		if _, ok := t.Elem.(*typegraph.Any); ok {
			return "[" + anyScalar + "]", true, nil
		}
		elem, used, err := typeRef(t.Elem)
		if err != nil {
			return "", false, err
		}
		return "[" + elem + "!]", used, nil
	case *typegraph.Any:
		return anyScalar, true, nil
	default:
		return "", false, fmt.Errorf("unresolved type descriptor %T", td)
	}
}

// directivesFor renders the repeatable @constraint directives, arguments
// stringified so one declaration covers every predicate.
func directivesFor(directives []typegraph.ConstraintDirective) string {
	out := ""
	for _, directive := range directives {
		out += " @constraint(predicate: \"" + escapeSDL(string(directive.Predicate)) + "\""
		switch directive.Predicate {
		case typegraph.PredicateMinLength, typegraph.PredicateMaxLength:
			out += ", argument: \"" + strconv.Itoa(directive.IntArg) + "\""
		case typegraph.PredicateRegex:
			out += ", argument: \"" + escapeSDL(directive.StringArg) + "\""
		}
		out += ")"
	}
	return out
}
