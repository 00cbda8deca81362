// Package redact removes credentials from strings before they are logged or
// returned to clients. The provider API key travels in the request URL's
// query string, so transport errors (which echo the URL) must pass through
// here before they reach a log line or an error response.
package redact

import (
	"net/url"
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedEmailPlaceholder = "[REDACTED_EMAIL]"
)

// sensitiveQueryParams are query parameters whose values are always redacted.
var sensitiveQueryParams = []string{"key", "api_key", "apikey", "access_token", "token"}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; earlier rules keep the surrounding syntax so
// the redacted text stays readable.
var rules = []rule{
	{
		// ?key=... or &key=... in URLs
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token|token)=)[^&\s"'#]+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	{
		// Authorization: Bearer ..., x-goog-api-key: ...
		pattern:     regexp.MustCompile(`(?i)\b(x-goog-api-key|authorization)(["'\s:=]+)(bearer\s+)?[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}${3}" + RedactedKeyPlaceholder,
	},
	{
		// api_key=..., secret: ..., token "..."
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token)(["'\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		// Google API keys appearing on their own
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL returns u as a string with the values of credential-bearing query
// parameters replaced. The input is not modified.
func URL(u *url.URL) string {
	if u == nil {
		return ""
	}

	clone := *u
	q := clone.Query()
	changed := false
	for _, name := range sensitiveQueryParams {
		if q.Has(name) {
			q.Set(name, RedactedKeyPlaceholder)
			changed = true
		}
	}
	if changed {
		clone.RawQuery = q.Encode()
	}
	return clone.String()
}
