package typegraph

// Predicate identifies a canonical validation rule understood by the emitted
// validation runtimes.
type Predicate string

const (
	PredicateIsAlpha   Predicate = "isAlpha"
	PredicateIsNumeric Predicate = "isNumeric"
	PredicateMinLength Predicate = "minLength"
	PredicateMaxLength Predicate = "maxLength"
	PredicateRegex     Predicate = "regex"
)

// ConstraintDirective is one canonical validation rule attached to a field.
// MinLength and MaxLength carry their bound in IntArg; Regex keeps the raw,
// unescaped pattern source in StringArg; IsAlpha and IsNumeric take no
// argument. Escaping for a target language happens at emission, never here.
type ConstraintDirective struct {
	Predicate Predicate `json:"predicate"`
	StringArg string    `json:"stringArg,omitempty"`
	IntArg    int       `json:"intArg,omitempty"`
}

// HasArgument reports whether the directive's predicate carries an argument.
func (d ConstraintDirective) HasArgument() bool {
	switch d.Predicate {
	case PredicateMinLength, PredicateMaxLength, PredicateRegex:
		return true
	default:
		return false
	}
}
