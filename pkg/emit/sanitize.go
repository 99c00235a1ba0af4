package emit

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// SanitizeDescription prepares a schema description for embedding in
// generated source comments. Descriptions arrive from untrusted documents,
// so markup is stripped entirely and whitespace collapses to single spaces.
func SanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	cleaned := descriptionSanitizer().Sanitize(trimmed)
	return strings.Join(strings.Fields(cleaned), " ")
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.StrictPolicy()
	})
	return descriptionPolicy
}
