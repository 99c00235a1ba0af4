package typegraph

import (
	"errors"
	"fmt"
)

// Graph is the sealed result of a compilation: every named type of one
// document in declaration order, fully resolved. A Graph is immutable once
// built; emitters may walk it concurrently.
type Graph struct {
	types  []TypeDescriptor
	byName map[string]TypeDescriptor
}

// NewGraph seals a symbol table into a Graph. Sealing verifies that
// resolution left no Reference placeholders behind and that alias chains
// terminate. Cycles through object fields are legal and survive intact.
func NewGraph(table *SymbolTable) (*Graph, error) {
	if table == nil {
		return nil, errors.New("typegraph: symbol table is nil")
	}

	g := &Graph{byName: make(map[string]TypeDescriptor, table.Len())}
	for _, key := range table.Keys() {
		td, ok := table.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("typegraph: table lost declaration %q", key)
		}
		name := DeclaredName(td)
		if name == "" {
			return nil, fmt.Errorf("typegraph: declaration %q sealed as unnamed %s descriptor", key, td.Kind())
		}
		g.types = append(g.types, td)
		g.byName[name] = td
	}

	if err := g.verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Types returns the named descriptors in declaration order.
func (g *Graph) Types() []TypeDescriptor {
	return append([]TypeDescriptor(nil), g.types...)
}

// Named returns the descriptor carrying the given emitted type name.
func (g *Graph) Named(name string) (TypeDescriptor, bool) {
	td, ok := g.byName[name]
	return td, ok
}

// Len returns the number of named types.
func (g *Graph) Len() int {
	return len(g.types)
}

func (g *Graph) verify() error {
	visited := make(map[*Object]bool)
	for _, td := range g.types {
		if err := checkResolved(DeclaredName(td), "", td, visited, nil); err != nil {
			return err
		}
	}
	return nil
}

// checkResolved walks a descriptor rejecting leftover references and alias
// cycles. Objects are marked visited so field cycles terminate.
func checkResolved(owner, field string, td TypeDescriptor, visited map[*Object]bool, aliasTrail []string) error {
	switch v := td.(type) {
	case *Scalar, *Enum, *Any:
		return nil
	case *Reference:
		return &UnknownReferenceError{Declaration: owner, Field: field, Name: v.Name}
	case *List:
		return checkResolved(owner, field, v.Elem, visited, nil)
	case *Alias:
		for _, name := range aliasTrail {
			if name == v.Name {
				return fmt.Errorf("typegraph: alias cycle through %q", v.Name)
			}
		}
		if v.Target == nil {
			return fmt.Errorf("typegraph: alias %q has no target", v.Name)
		}
		return checkResolved(v.Name, "", v.Target, visited, append(aliasTrail, v.Name))
	case *Object:
		if visited[v] {
			return nil
		}
		visited[v] = true
		for _, f := range v.Fields {
			if f.Type == nil {
				return fmt.Errorf("typegraph: field %q of %q has no type", f.Name, v.Name)
			}
			if err := checkResolved(v.Name, f.Name, f.Type, visited, nil); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("typegraph: unexpected descriptor %T", td)
	}
}
