package typegraph

import (
	"regexp"
	"strings"
)

var nameSeparatorPattern = regexp.MustCompile(`[._\-\s]+`)

// TypeName converts a declared identifier into the leading-upper-case form
// used for emitted type names. Underscores, hyphens, periods, and spaces act
// as word boundaries; interior casing of each word is preserved.
func TypeName(name string) string {
	words := splitName(name)
	for i, word := range words {
		words[i] = upperFirst(word)
	}
	return strings.Join(words, "")
}

// FieldName converts a declared property identifier into the leading
// lower-case form used for emitted member names.
func FieldName(name string) string {
	words := splitName(name)
	for i, word := range words {
		if i == 0 {
			words[i] = lowerFirst(word)
			continue
		}
		words[i] = upperFirst(word)
	}
	return strings.Join(words, "")
}

// EnumValue canonicalizes an enumeration entry to its upper-case identifier
// form. Separator characters and camelCase humps both act as boundaries, so
// "inProgress", "in-progress", and "IN_PROGRESS" all canonicalize alike.
func EnumValue(value string) string {
	words := splitWords(value)
	return strings.ToUpper(strings.Join(words, "_"))
}

// FileName converts a type name into the lower_snake form used for output
// unit names.
func FileName(name string) string {
	words := splitWords(name)
	return strings.ToLower(strings.Join(words, "_"))
}

// splitName splits on separator characters only, keeping camel humps intact.
func splitName(name string) []string {
	parts := nameSeparatorPattern.Split(strings.TrimSpace(name), -1)
	words := parts[:0]
	for _, part := range parts {
		if part != "" {
			words = append(words, part)
		}
	}
	return words
}

// splitWords splits on separator characters and camelCase boundaries.
func splitWords(name string) []string {
	var words []string
	for _, part := range splitName(name) {
		words = append(words, strings.Fields(splitCamel(part))...)
	}
	return words
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isWordBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isWordBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func upperFirst(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func lowerFirst(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToLower(word[:1]) + word[1:]
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
