package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// resolver runs the second pass: object field population, reference
// resolution, nested type synthesis, and constraint compilation. All anchors
// are declared by the time it runs, so order between declarations no longer
// matters.
type resolver struct {
	table *typegraph.SymbolTable
}

func (r *resolver) resolveAll(section *schema.Mapping) error {
	// Only top-level objects are walked here; nested objects are synthesized
	// and populated recursively as fields discover them.
	for _, entry := range section.Entries() {
		td, ok := r.table.Lookup(entry.Key)
		if !ok {
			continue
		}
		obj, ok := td.(*typegraph.Object)
		if !ok {
			continue
		}

		body, ok := entry.Value.(*schema.Mapping)
		if !ok {
			// The anchor pass already rejected non-mapping declarations.
			continue
		}
		if err := r.populateObject(obj, entry.Key, body); err != nil {
			return err
		}
	}
	return nil
}

// populateObject fills an object's field list from its properties block,
// preserving declaration order.
func (r *resolver) populateObject(obj *typegraph.Object, declName string, body *schema.Mapping) error {
	node, ok := body.Get("properties")
	if !ok {
		obj.Fields = nil
		return nil
	}
	props, ok := node.(*schema.Mapping)
	if !ok {
		return &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("properties of %q is not a mapping", declName),
		}
	}

	fields := make([]typegraph.Field, 0, props.Len())
	seen := make(map[string]bool, props.Len())
	for _, entry := range props.Entries() {
		// Two properties may collide outright or only after field name
		// conversion; either way the emitted member names would clash.
		converted := typegraph.FieldName(entry.Key)
		if seen[converted] {
			return &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("field %q of %q collides with an earlier field", entry.Key, declName),
			}
		}
		seen[converted] = true

		field, err := r.resolveField(declName, entry.Key, entry.Value)
		if err != nil {
			return err
		}
		fields = append(fields, field)
	}
	obj.Fields = fields
	return nil
}

func (r *resolver) resolveField(declName, propName string, node schema.Node) (typegraph.Field, error) {
	body, ok := node.(*schema.Mapping)
	if !ok {
		return typegraph.Field{}, &typegraph.UnsupportedTypeError{
			Declaration: declName,
			Field:       propName,
			Token:       shapeToken(node),
		}
	}

	field := typegraph.Field{
		Name:        propName,
		Description: descriptionOf(body),
	}

	if reqNode, ok := body.Get("required"); ok {
		scalar, isScalar := reqNode.(*schema.Scalar)
		value, isBool := false, false
		if isScalar {
			value, isBool = scalar.AsBool()
		}
		if !isScalar || !isBool {
			return typegraph.Field{}, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("required of field %q in %q must be a boolean", propName, declName),
			}
		}
		field.Required = value
	}

	td, err := r.resolveType(declName, propName, body)
	if err != nil {
		return typegraph.Field{}, err
	}
	field.Type = td

	if validateNode, ok := body.Get("validate"); ok {
		constraints, err := compileConstraints(declName, propName, validateNode)
		if err != nil {
			return typegraph.Field{}, err
		}
		field.Constraints = constraints
	}
	return field, nil
}

// resolveType maps one property body onto a descriptor: reference lookups
// first, then inline objects, collections, and primitive tokens.
func (r *resolver) resolveType(declName, propName string, body *schema.Mapping) (typegraph.TypeDescriptor, error) {
	if refNode, ok := body.Get("$ref"); ok {
		return r.resolveReference(declName, propName, refNode)
	}

	token, ok := stringValue(body, "type")
	if !ok {
		return nil, &typegraph.UnsupportedTypeError{Declaration: declName, Field: propName}
	}

	switch {
	case token == "object":
		return r.synthesizeObject(propName, body)
	case token == "array":
		return r.resolveList(declName, propName, body)
	default:
		if kind, ok := typegraph.ScalarKindForToken(token); ok {
			return &typegraph.Scalar{Primitive: kind}, nil
		}
		// Bare type names resolve against the symbol table, same as $ref.
		if td, ok := r.table.Lookup(token); ok {
			return td, nil
		}
		return nil, &typegraph.UnsupportedTypeError{Declaration: declName, Field: propName, Token: token}
	}
}

// resolveReference looks a $ref pointer up in the symbol table. Only the
// final path segment matters; documents are self-contained, so there is no
// cross-document resolution.
func (r *resolver) resolveReference(declName, propName string, node schema.Node) (typegraph.TypeDescriptor, error) {
	scalar, ok := node.(*schema.Scalar)
	raw := ""
	if ok {
		raw, ok = scalar.AsString()
	}
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("$ref of field %q in %q must be a string", propName, declName),
		}
	}

	target := referenceTarget(raw)
	if target == "" {
		return nil, &typegraph.UnknownReferenceError{Declaration: declName, Field: propName, Name: raw}
	}
	td, ok := r.table.Lookup(target)
	if !ok {
		return nil, &typegraph.UnknownReferenceError{Declaration: declName, Field: propName, Name: target}
	}
	return td, nil
}

// referenceTarget extracts the declaration name from a reference pointer,
// accepting both bare names and "#/<section>/<name>" pointers.
func referenceTarget(raw string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	segments := strings.Split(trimmed, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segment := strings.TrimSpace(segments[i]); segment != "" {
			return segment
		}
	}
	return ""
}

// synthesizeObject materializes an inline object declaration as a fresh
// named type registered alongside the declared ones. The synthesized name
// derives from the declaring field; collisions pick the next free numeric
// suffix deterministically.
func (r *resolver) synthesizeObject(propName string, body *schema.Mapping) (typegraph.TypeDescriptor, error) {
	name := r.synthesizedName(propName)
	nested := &typegraph.Object{
		Name:        name,
		Description: descriptionOf(body),
	}
	if err := r.table.Declare(name, nested); err != nil {
		return nil, err
	}
	if err := r.populateObject(nested, name, body); err != nil {
		return nil, err
	}
	return nested, nil
}

func (r *resolver) synthesizedName(propName string) string {
	base := typegraph.TypeName(propName)
	candidate := base
	for suffix := 2; r.table.Has(candidate) || r.table.HasTypeName(candidate); suffix++ {
		candidate = base + strconv.Itoa(suffix)
	}
	return candidate
}

// resolveList maps an array property onto a List descriptor. A missing items
// block yields the unconstrained element type.
func (r *resolver) resolveList(declName, propName string, body *schema.Mapping) (typegraph.TypeDescriptor, error) {
	node, ok := body.Get("items")
	if !ok {
		return &typegraph.List{Elem: &typegraph.Any{}}, nil
	}
	items, ok := node.(*schema.Mapping)
	if !ok {
		return nil, &typegraph.UnsupportedTypeError{
			Declaration: declName,
			Field:       propName,
			Token:       shapeToken(node),
		}
	}

	elem, err := r.resolveType(declName, propName, items)
	if err != nil {
		return nil, err
	}
	return &typegraph.List{Elem: elem}, nil
}
