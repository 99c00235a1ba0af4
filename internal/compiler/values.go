package compiler

import "github.com/goliatone/go-schemagen/pkg/schema"

// Small accessors shared by both passes.

// stringValue returns the string stored under key, when present and a
// string.
func stringValue(m *schema.Mapping, key string) (string, bool) {
	node, ok := m.Get(key)
	if !ok {
		return "", false
	}
	scalar, ok := node.(*schema.Scalar)
	if !ok {
		return "", false
	}
	return scalar.AsString()
}

// descriptionOf returns the declaration's description, or empty.
func descriptionOf(m *schema.Mapping) string {
	value, _ := stringValue(m, "description")
	return value
}

// shapeToken names a node's shape for diagnostics.
func shapeToken(node schema.Node) string {
	switch node.(type) {
	case *schema.Mapping:
		return "mapping"
	case *schema.Sequence:
		return "sequence"
	case *schema.Scalar:
		return "scalar"
	default:
		return "unknown"
	}
}
