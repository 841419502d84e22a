package prompt

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from user-typed labels and option values. The
// form renderer injects titles into the page, so nothing but text survives.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	// bluemonday escapes entities; titles are stored as plain text.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// SanitizeLines splits a multi-line answer into cleaned, non-empty entries.
func SanitizeLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if cleaned := SanitizeText(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
