package typegraph

import "encoding/json"

// The JSON rendering backs inspection tooling. Nested named types appear by
// name so the output stays finite for cyclic object graphs.

type typeJSON struct {
	Name        string      `json:"name"`
	Kind        Kind        `json:"kind"`
	Description string      `json:"description,omitempty"`
	Fields      []fieldJSON `json:"fields,omitempty"`
	Values      []string    `json:"values,omitempty"`
	Target      string      `json:"target,omitempty"`
}

type fieldJSON struct {
	Name        string                `json:"name"`
	Type        string                `json:"type"`
	Required    bool                  `json:"required"`
	Description string                `json:"description,omitempty"`
	Constraints []ConstraintDirective `json:"constraints,omitempty"`
}

// MarshalJSON renders the graph as an ordered list of named types.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := make([]typeJSON, 0, len(g.types))
	for _, td := range g.types {
		entry := typeJSON{Name: DeclaredName(td), Kind: td.Kind()}
		switch v := td.(type) {
		case *Object:
			entry.Description = v.Description
			for _, field := range v.Fields {
				entry.Fields = append(entry.Fields, fieldJSON{
					Name:        field.Name,
					Type:        TypeRef(field.Type),
					Required:    field.Required,
					Description: field.Description,
					Constraints: field.Constraints,
				})
			}
		case *Enum:
			entry.Description = v.Description
			entry.Values = append(entry.Values, v.Values...)
		case *Alias:
			entry.Description = v.Description
			entry.Target = TypeRef(v.Target)
		}
		out = append(out, entry)
	}
	return json.Marshal(out)
}

// TypeRef renders a compact textual reference for a descriptor: named types
// by name, scalars by primitive token, lists with a [] suffix.
func TypeRef(td TypeDescriptor) string {
	switch v := td.(type) {
	case nil:
		return ""
	case *Scalar:
		return string(v.Primitive)
	case *Object:
		return v.Name
	case *Enum:
		return v.Name
	case *Alias:
		return v.Name
	case *List:
		return TypeRef(v.Elem) + "[]"
	case *Any:
		return "any"
	case *Reference:
		return "unresolved:" + v.Name
	default:
		return string(td.Kind())
	}
}
