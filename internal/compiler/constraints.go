package compiler

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

// Validation pattern vocabulary accepted by the constraint compiler. The
// vocabulary is expected to grow ahead of compiler releases, so a pattern
// name outside this set is dropped rather than failing the document. A
// recognized pattern with a bad argument is always fatal.
const (
	patternIsLetter  = "isLetter"
	patternIsNumeric = "isNumeric"
	patternMinLength = "minLength"
	patternMaxLength = "maxLength"
	patternRegex     = "regex"
)

// KnownPatterns returns the accepted pattern names sorted alphabetically.
// Lint tooling uses it to surface directives the compiler would drop.
func KnownPatterns() []string {
	names := []string{
		patternIsLetter,
		patternIsNumeric,
		patternMinLength,
		patternMaxLength,
		patternRegex,
	}
	sort.Strings(names)
	return names
}

// IsKnownPattern reports whether the compiler understands a pattern name.
func IsKnownPattern(name string) bool {
	switch name {
	case patternIsLetter, patternIsNumeric, patternMinLength, patternMaxLength, patternRegex:
		return true
	default:
		return false
	}
}

// compileConstraints normalizes a field's validate block into canonical
// directives, preserving declaration order. Regex sources stay raw here;
// escaping belongs to emitters.
func compileConstraints(declName, fieldName string, node schema.Node) ([]typegraph.ConstraintDirective, error) {
	seq, ok := node.(*schema.Sequence)
	if !ok {
		return nil, &schema.MalformedDocumentError{
			Reason: fmt.Sprintf("validate of field %q in %q is not a sequence", fieldName, declName),
		}
	}

	var directives []typegraph.ConstraintDirective
	for _, item := range seq.Items() {
		entry, ok := item.(*schema.Mapping)
		if !ok {
			return nil, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("validate entry of field %q in %q is not a mapping", fieldName, declName),
			}
		}
		pattern, ok := stringValue(entry, "pattern")
		if !ok {
			return nil, &schema.MalformedDocumentError{
				Reason: fmt.Sprintf("validate entry of field %q in %q is missing a pattern", fieldName, declName),
			}
		}

		valueNode, hasValue := entry.Get("value")

		switch pattern {
		case patternIsLetter:
			directives = append(directives, typegraph.ConstraintDirective{Predicate: typegraph.PredicateIsAlpha})
		case patternIsNumeric:
			directives = append(directives, typegraph.ConstraintDirective{Predicate: typegraph.PredicateIsNumeric})
		case patternMinLength, patternMaxLength:
			bound, err := intArgument(declName, fieldName, pattern, valueNode, hasValue)
			if err != nil {
				return nil, err
			}
			predicate := typegraph.PredicateMinLength
			if pattern == patternMaxLength {
				predicate = typegraph.PredicateMaxLength
			}
			directives = append(directives, typegraph.ConstraintDirective{Predicate: predicate, IntArg: bound})
		case patternRegex:
			source, err := regexArgument(declName, fieldName, valueNode, hasValue)
			if err != nil {
				return nil, err
			}
			directives = append(directives, typegraph.ConstraintDirective{Predicate: typegraph.PredicateRegex, StringArg: source})
		default:
			// Unknown vocabulary; sibling directives are unaffected.
			continue
		}
	}
	return directives, nil
}

// intArgument validates the bound of a length pattern: present, an integer,
// and non-negative.
func intArgument(declName, fieldName, pattern string, node schema.Node, present bool) (int, error) {
	fail := func(reason string) error {
		return &typegraph.InvalidConstraintArgumentError{
			Declaration: declName,
			Field:       fieldName,
			Pattern:     pattern,
			Reason:      reason,
		}
	}

	if !present {
		return 0, fail("argument is required")
	}
	scalar, ok := node.(*schema.Scalar)
	if !ok {
		return 0, fail("argument must be an integer")
	}
	value, ok := scalar.AsInt()
	if !ok {
		return 0, fail("argument must be an integer")
	}
	if value < 0 {
		return 0, fail("argument must be non-negative")
	}
	return int(value), nil
}

func regexArgument(declName, fieldName string, node schema.Node, present bool) (string, error) {
	fail := func(reason string) error {
		return &typegraph.InvalidConstraintArgumentError{
			Declaration: declName,
			Field:       fieldName,
			Pattern:     patternRegex,
			Reason:      reason,
		}
	}

	if !present {
		return "", fail("argument is required")
	}
	scalar, ok := node.(*schema.Scalar)
	if !ok {
		return "", fail("argument must be a string")
	}
	source, ok := scalar.AsString()
	if !ok {
		return "", fail("argument must be a string")
	}
	return source, nil
}
