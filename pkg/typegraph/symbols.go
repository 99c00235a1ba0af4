package typegraph

import "errors"

// SymbolTable maps declared names to their descriptors in declaration order.
// A table is created fresh for each compilation and owned by it; nothing is
// shared across documents, so one rejected document cannot poison the next.
type SymbolTable struct {
	order []string
	decls map[string]TypeDescriptor
	names map[string]string
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		decls: make(map[string]TypeDescriptor),
		names: make(map[string]string),
	}
}

// Declare registers a descriptor under its declared key. Both the key and
// the descriptor's converted type name must be unique; either collision is a
// DuplicateNameError.
func (t *SymbolTable) Declare(key string, td TypeDescriptor) error {
	if key == "" {
		return errors.New("typegraph: declaration key is empty")
	}
	if td == nil {
		return errors.New("typegraph: descriptor is nil")
	}
	if _, exists := t.decls[key]; exists {
		return &DuplicateNameError{Name: key}
	}
	if canonical := DeclaredName(td); canonical != "" {
		if _, exists := t.names[canonical]; exists {
			return &DuplicateNameError{Name: key, TypeName: canonical}
		}
		t.names[canonical] = key
	}

	t.order = append(t.order, key)
	t.decls[key] = td
	return nil
}

// Lookup returns the descriptor declared under key.
func (t *SymbolTable) Lookup(key string) (TypeDescriptor, bool) {
	td, ok := t.decls[key]
	return td, ok
}

// Has reports whether key is declared.
func (t *SymbolTable) Has(key string) bool {
	_, ok := t.decls[key]
	return ok
}

// HasTypeName reports whether any declaration converts to the given emitted
// type name.
func (t *SymbolTable) HasTypeName(name string) bool {
	_, ok := t.names[name]
	return ok
}

// Keys returns the declared keys in declaration order.
func (t *SymbolTable) Keys() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of declarations.
func (t *SymbolTable) Len() int {
	return len(t.order)
}

// DeclaredName returns the emitted type name a descriptor carries, or the
// empty string for unnamed descriptors such as scalars and lists.
func DeclaredName(td TypeDescriptor) string {
	switch v := td.(type) {
	case *Object:
		return v.Name
	case *Enum:
		return v.Name
	case *Alias:
		return v.Name
	default:
		return ""
	}
}
