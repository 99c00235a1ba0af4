// Package typegraph holds the resolved type model produced by the compiler
// and consumed by emitters: named descriptors, field lists, validation
// directives, and the symbol table that ties declarations together.
package typegraph

// Kind discriminates TypeDescriptor implementations.
type Kind string

const (
	KindScalar    Kind = "scalar"
	KindObject    Kind = "object"
	KindEnum      Kind = "enum"
	KindAlias     Kind = "alias"
	KindList      Kind = "list"
	KindAny       Kind = "any"
	KindReference Kind = "reference"
)

// TypeDescriptor is one resolved type. The implementation set is closed;
// consumers type switch over it and treat unknown kinds as programming
// errors rather than silently skipping them.
type TypeDescriptor interface {
	Kind() Kind
}

// ScalarKind enumerates the primitive value kinds a schema can declare.
type ScalarKind string

const (
	ScalarString  ScalarKind = "string"
	ScalarInteger ScalarKind = "integer"
	ScalarNumber  ScalarKind = "number"
	ScalarBoolean ScalarKind = "boolean"
)

// ScalarKindForToken maps a declared primitive token onto its ScalarKind.
func ScalarKindForToken(token string) (ScalarKind, bool) {
	switch token {
	case "string":
		return ScalarString, true
	case "integer":
		return ScalarInteger, true
	case "number":
		return ScalarNumber, true
	case "boolean":
		return ScalarBoolean, true
	default:
		return "", false
	}
}

// Scalar describes a primitive value type.
type Scalar struct {
	Primitive ScalarKind
}

func (*Scalar) Kind() Kind { return KindScalar }

// Object is a named composite type with an ordered field list. Fields keep
// declaration order so emission is deterministic.
type Object struct {
	Name        string
	Description string
	Fields      []Field
}

func (*Object) Kind() Kind { return KindObject }

// Enum is a named closed set of symbolic values. Values are stored in their
// canonical upper-case identifier form, declaration order preserved.
type Enum struct {
	Name        string
	Description string
	Values      []string
}

func (*Enum) Kind() Kind { return KindEnum }

// Alias names another type without introducing new structure.
type Alias struct {
	Name        string
	Description string
	Target      TypeDescriptor
}

func (*Alias) Kind() Kind { return KindAlias }

// List is an ordered collection of Elem values.
type List struct {
	Elem TypeDescriptor
}

func (*List) Kind() Kind { return KindList }

// Any is the unconstrained element type used when a collection omits its
// item declaration.
type Any struct{}

func (*Any) Kind() Kind { return KindAny }

// Reference is a transient placeholder for a name that has not resolved yet.
// References only exist between the collection and resolution passes; one
// surviving into a sealed Graph is a compiler bug.
type Reference struct {
	Name string
}

func (*Reference) Kind() Kind { return KindReference }

// Field is one typed member of an Object. Name keeps the declared property
// spelling; emitters convert it to their naming convention.
type Field struct {
	Name        string
	Type        TypeDescriptor
	Required    bool
	Description string
	Constraints []ConstraintDirective
}
