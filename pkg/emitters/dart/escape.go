package dart

import "strings"

// dartEscaper rewrites the characters that are significant inside a
// double-quoted Dart string literal: the backslash, the quote itself, and
// the `$` interpolation marker.
var dartEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"$", `\$`,
)

// EscapeString makes raw text safe to place inside a double-quoted Dart
// string literal. Regex patterns pass through the compiler unescaped; this
// is where they pick up their target-language escaping.
func EscapeString(raw string) string {
	return dartEscaper.Replace(raw)
}

// quote wraps escaped text in double quotes.
func quote(raw string) string {
	return `"` + EscapeString(raw) + `"`
}
