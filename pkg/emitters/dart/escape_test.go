package dart_test

import (
	"testing"

	"github.com/goliatone/go-schemagen/pkg/emitters/dart"
)

func TestEscapeString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "firstName", want: "firstName"},
		{name: "backslash", in: `a\b`, want: `a\\b`},
		{name: "double quote", in: `say "hi"`, want: `say \"hi\"`},
		{name: "interpolation marker", in: "cost$total", want: `cost\$total`},
		{name: "phone regex", in: `^[0-9]{10}$`, want: `^[0-9]{10}\$`},
		{name: "regex with class escape", in: `^\d+$`, want: `^\\d+\$`},
		{name: "all three", in: `\"$`, want: `\\\"\$`},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dart.EscapeString(tc.in); got != tc.want {
				t.Errorf("EscapeString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
