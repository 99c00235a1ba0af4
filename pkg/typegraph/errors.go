package typegraph

import "fmt"

// Compilation failures are typed so callers can branch with errors.As. Every
// error below aborts the document it occurs in; no partial graph is returned
// alongside one.

// DuplicateNameError reports a declaration whose name, or converted type
// name, collides with an earlier declaration in the same document.
type DuplicateNameError struct {
	// Name is the offending declared name.
	Name string
	// TypeName is set when the collision is between distinct declared names
	// that convert to the same emitted type name.
	TypeName string
}

func (e *DuplicateNameError) Error() string {
	if e.TypeName != "" && e.TypeName != e.Name {
		return fmt.Sprintf("typegraph: declaration %q collides with existing type name %q", e.Name, e.TypeName)
	}
	return fmt.Sprintf("typegraph: duplicate declaration %q", e.Name)
}

// UnknownReferenceError reports a reference to a name that no declaration in
// the document provides.
type UnknownReferenceError struct {
	// Declaration is the type being resolved when the lookup failed.
	Declaration string
	// Field is the property holding the reference, empty for declaration
	// level references such as alias targets.
	Field string
	// Name is the target that could not be found.
	Name string
}

func (e *UnknownReferenceError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("typegraph: field %q of %q: unknown reference %q", e.Field, e.Declaration, e.Name)
	}
	return fmt.Sprintf("typegraph: declaration %q: unknown reference %q", e.Declaration, e.Name)
}

// UnsupportedTypeError reports a declaration or property whose shape or type
// token the compiler does not model.
type UnsupportedTypeError struct {
	Declaration string
	// Field is empty when the whole declaration is unsupported.
	Field string
	// Token is the offending type token or shape description.
	Token string
}

func (e *UnsupportedTypeError) Error() string {
	switch {
	case e.Field != "" && e.Token != "":
		return fmt.Sprintf("typegraph: field %q of %q: unsupported type %q", e.Field, e.Declaration, e.Token)
	case e.Field != "":
		return fmt.Sprintf("typegraph: field %q of %q declares no usable type", e.Field, e.Declaration)
	case e.Token != "":
		return fmt.Sprintf("typegraph: declaration %q: unsupported type %q", e.Declaration, e.Token)
	default:
		return fmt.Sprintf("typegraph: declaration %q declares no usable type", e.Declaration)
	}
}

// InvalidConstraintArgumentError reports a recognized validation pattern
// whose argument is missing, mistyped, or out of range.
type InvalidConstraintArgumentError struct {
	Declaration string
	Field       string
	// Pattern is the declared pattern name as written in the document.
	Pattern string
	Reason  string
}

func (e *InvalidConstraintArgumentError) Error() string {
	return fmt.Sprintf("typegraph: field %q of %q: constraint %q: %s", e.Field, e.Declaration, e.Pattern, e.Reason)
}

// EmptyEnumerationError reports an enumeration declared without values.
type EmptyEnumerationError struct {
	Declaration string
}

func (e *EmptyEnumerationError) Error() string {
	return fmt.Sprintf("typegraph: enumeration %q has no values", e.Declaration)
}

// DuplicateEnumerationValueError reports an enumeration whose entries
// collide after canonicalization.
type DuplicateEnumerationValueError struct {
	Declaration string
	// Value is the canonical form both entries map to.
	Value string
}

func (e *DuplicateEnumerationValueError) Error() string {
	return fmt.Sprintf("typegraph: enumeration %q repeats value %q", e.Declaration, e.Value)
}
