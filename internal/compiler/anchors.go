package compiler

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// collectAnchors is the shallow first pass over the declarations section.
// Every name is registered with a provisional descriptor built from surface
// shape only, so later declarations are visible to earlier ones before any
// field resolution happens.
func collectAnchors(table *typegraph.SymbolTable, section *schema.Mapping) error {
	for _, entry := range section.Entries() {
		name := strings.TrimSpace(entry.Key)
		if name == "" {
			return &schema.MalformedDocumentError{Reason: "declaration with an empty name"}
		}

		body, ok := entry.Value.(*schema.Mapping)
		if !ok {
			return &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("declaration %q is not a mapping", name),
			}
		}

		provisional, err := classify(name, body)
		if err != nil {
			return err
		}
		if err := table.Declare(name, provisional); err != nil {
			return err
		}
	}

	return resolveAliasTargets(table)
}

// classify builds the provisional descriptor for one declaration from its
// shallow shape. Priority order: string enumerations, objects, primitive
// aliases, then aliases to other declarations.
func classify(name string, body *schema.Mapping) (typegraph.TypeDescriptor, error) {
	token, ok := stringValue(body, "type")
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("declaration %q is missing a type", name),
		}
	}

	description := descriptionOf(body)

	if token == "string" && body.Has("enum") {
		values, err := enumValues(name, body)
		if err != nil {
			return nil, err
		}
		return &typegraph.Enum{
			Name:        typegraph.TypeName(name),
			Description: description,
			Values:      values,
		}, nil
	}

	if token == "object" {
		return &typegraph.Object{
			Name:        typegraph.TypeName(name),
			Description: description,
		}, nil
	}

	if kind, ok := typegraph.ScalarKindForToken(token); ok {
		return &typegraph.Alias{
			Name:        typegraph.TypeName(name),
			Description: description,
			Target:      &typegraph.Scalar{Primitive: kind},
		}, nil
	}

	if token == "array" {
		return nil, &typegraph.UnsupportedTypeError{Declaration: name, Token: token}
	}

	// Any other token names a sibling declaration. The target may not be
	// declared yet, so it stays a Reference until every anchor is known.
	return &typegraph.Alias{
		Name:        typegraph.TypeName(name),
		Description: description,
		Target:      &typegraph.Reference{Name: token},
	}, nil
}

// enumValues canonicalizes the declared entries of a string enumeration.
func enumValues(name string, body *schema.Mapping) ([]string, error) {
	node, _ := body.Get("enum")
	seq, ok := node.(*schema.Sequence)
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("enum of %q is not a sequence", name),
		}
	}

	items := seq.Items()
	if len(items) == 0 {
		return nil, &typegraph.EmptyEnumerationError{Declaration: name}
	}

	values := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		scalar, ok := item.(*schema.Scalar)
		if !ok {
			return nil, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("enumeration %q holds a non-scalar value", name),
			}
		}
		raw, ok := scalar.AsString()
		if !ok {
			return nil, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("enumeration %q holds a non-string value", name),
			}
		}

		canonical := typegraph.EnumValue(raw)
		if canonical == "" {
			return nil, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("enumeration %q holds an empty value", name),
			}
		}
		if _, dup := seen[canonical]; dup {
			return nil, &typegraph.DuplicateEnumerationValueError{Declaration: name, Value: canonical}
		}
		seen[canonical] = struct{}{}
		values = append(values, canonical)
	}
	return values, nil
}

// resolveAliasTargets settles aliases whose targets were other declarations.
// Chains settle over repeated sweeps; a sweep without progress means the
// remaining targets only point at each other.
func resolveAliasTargets(table *typegraph.SymbolTable) error {
	type pendingAlias struct {
		key    string
		alias  *typegraph.Alias
		target string
	}

	var pending []pendingAlias
	for _, key := range table.Keys() {
		td, _ := table.Lookup(key)
		alias, ok := td.(*typegraph.Alias)
		if !ok {
			continue
		}
		if ref, ok := alias.Target.(*typegraph.Reference); ok {
			pending = append(pending, pendingAlias{key: key, alias: alias, target: ref.Name})
		}
	}

	for len(pending) > 0 {
		progressed := false
		var next []pendingAlias

		for _, p := range pending {
			target, ok := table.Lookup(p.target)
			if !ok {
				return &typegraph.UnknownReferenceError{Declaration: p.key, Name: p.target}
			}
			if aliasPending(target) {
				next = append(next, p)
				continue
			}
			p.alias.Target = target
			progressed = true
		}

		if !progressed {
			return &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("alias cycle involving declaration %q", pending[0].key),
			}
		}
		pending = next
	}
	return nil
}

// aliasPending reports whether a descriptor is an alias that still points at
// an unresolved reference.
func aliasPending(td typegraph.TypeDescriptor) bool {
	alias, ok := td.(*typegraph.Alias)
	if !ok {
		return false
	}
	_, pending := alias.Target.(*typegraph.Reference)
	return pending
}
