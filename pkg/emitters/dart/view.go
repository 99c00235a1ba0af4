package dart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// runtime unit stems every generated class depends on.
const (
	constraintsUnit = "constraints"
	validatorsUnit  = "validators"
)

// classView shapes an object descriptor for class.tpl.
func classView(obj *typegraph.Object, options emit.Options) (map[string]any, error) {
	fields := make([]map[string]any, 0, len(obj.Fields))
	entries := make([]map[string]any, 0, len(obj.Fields))

	for _, field := range obj.Fields {
		ref, err := typeRef(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		if !field.Required {
			ref = nullable(ref)
		}
		fields = append(fields, map[string]any{
			"name":        typegraph.FieldName(field.Name),
			"key":         EscapeString(field.Name),
			"type":        ref,
			"description": emit.SanitizeDescription(field.Description),
		})

		if len(field.Constraints) == 0 {
			continue
		}
		literals := make([]string, 0, len(field.Constraints))
		for _, directive := range field.Constraints {
			literals = append(literals, constraintLiteral(directive))
		}
		entries = append(entries, map[string]any{
			"field":    EscapeString(field.Name),
			"literals": strings.Join(literals, ", "),
		})
	}

	return map[string]any{
		"name":              obj.Name,
		"description":       emit.SanitizeDescription(obj.Description),
		"imports":           classImports(obj, options),
		"fields":            fields,
		"ctorParams":        ctorParams(obj.Fields),
		"constraintEntries": entries,
	}, nil
}

// enumView shapes an enum descriptor for enum.tpl.
func enumView(enum *typegraph.Enum) map[string]any {
	return map[string]any{
		"name":        enum.Name,
		"description": emit.SanitizeDescription(enum.Description),
		"values":      append([]string(nil), enum.Values...),
	}
}

// aliasView shapes an alias descriptor for alias.tpl.
func aliasView(alias *typegraph.Alias, options emit.Options) (map[string]any, error) {
	target, err := typeRef(alias.Target)
	if err != nil {
		return nil, fmt.Errorf("alias %q: %w", alias.Name, err)
	}

	var imports []string
	if name, ok := namedTypeOf(alias.Target); ok && name != alias.Name {
		imports = append(imports, importPath(typegraph.FileName(name), options))
	}

	return map[string]any{
		"name":        alias.Name,
		"description": emit.SanitizeDescription(alias.Description),
		"imports":     imports,
		"target":      target,
	}, nil
}

// typeRef maps a descriptor onto the Dart type that represents it. Named
// types keep their own name even when they alias something else; the
// typedef unit carries the indirection.
func typeRef(td typegraph.TypeDescriptor) (string, error) {
	switch t := td.(type) {
	case *typegraph.Scalar:
		switch t.Primitive {
		case typegraph.ScalarString:
			return "String", nil
		case typegraph.ScalarInteger:
			return "int", nil
		case typegraph.ScalarNumber:
			return "double", nil
		case typegraph.ScalarBoolean:
			return "bool", nil
		default:
			return "", fmt.Errorf("unknown scalar kind %q", t.Primitive)
		}
	case *typegraph.Object:
		return t.Name, nil
	case *typegraph.Enum:
		return t.Name, nil
	case *typegraph.Alias:
		return t.Name, nil
	case *typegraph.List:
		elem, err := typeRef(t.Elem)
		if err != nil {
			return "", err
		}
		return "List<" + elem + ">", nil
	case *typegraph.Any:
		return "Object?", nil
	default:
		return "", fmt.Errorf("unresolved type descriptor %T", td)
	}
}

// nullable appends the Dart nullability marker unless the type already
// carries one, as Object? does.
func nullable(ref string) string {
	if strings.HasSuffix(ref, "?") {
		return ref
	}
	return ref + "?"
}

// ctorParams renders the constructor parameter list: named parameters for
// every field, `required` for required ones.
func ctorParams(fields []typegraph.Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		name := typegraph.FieldName(field.Name)
		if field.Required {
			parts = append(parts, "required this."+name)
		} else {
			parts = append(parts, "this."+name)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// constraintLiteral renders one directive as a Dart Constraint constructor
// call, escaping string arguments for the target literal.
func constraintLiteral(directive typegraph.ConstraintDirective) string {
	predicate := quote(string(directive.Predicate))
	switch directive.Predicate {
	case typegraph.PredicateMinLength, typegraph.PredicateMaxLength:
		return "Constraint(" + predicate + ", " + strconv.Itoa(directive.IntArg) + ")"
	case typegraph.PredicateRegex:
		return "Constraint(" + predicate + ", " + quote(directive.StringArg) + ")"
	default:
		return "Constraint(" + predicate + ")"
	}
}

// classImports collects the import lines a class unit needs: the shared
// runtime plus every named type its fields reference, sorted and deduped,
// self-references skipped.
func classImports(obj *typegraph.Object, options emit.Options) []string {
	stems := map[string]bool{
		constraintsUnit: true,
		validatorsUnit:  true,
	}
	for _, field := range obj.Fields {
		name, ok := namedTypeOf(field.Type)
		if !ok || name == obj.Name {
			continue
		}
		stems[typegraph.FileName(name)] = true
	}

	imports := make([]string, 0, len(stems))
	for stem := range stems {
		imports = append(imports, importPath(stem, options))
	}
	sort.Strings(imports)
	return imports
}

// importPath resolves a unit stem to its import URI. With a target package
// set the import is package-qualified, otherwise relative.
func importPath(stem string, options emit.Options) string {
	if options.Package != "" {
		return "package:" + options.Package + "/" + stem + ".dart"
	}
	return stem + ".dart"
}

// namedTypeOf reports the named declaration a field type resolves to, looking
// through list elements. Scalars and Any carry no name.
func namedTypeOf(td typegraph.TypeDescriptor) (string, bool) {
	switch t := td.(type) {
	case *typegraph.Object:
		return t.Name, true
	case *typegraph.Enum:
		return t.Name, true
	case *typegraph.Alias:
		return t.Name, true
	case *typegraph.List:
		return namedTypeOf(t.Elem)
	default:
		return "", false
	}
}
