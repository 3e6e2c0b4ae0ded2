// Package redact keeps passwords and other secrets out of logs and printed
// output.
package redact

import (
	"regexp"
	"strings"
)

const (
	redacted = "[REDACTED]"
	mask     = "********"
)

// patterns holds single-line secret-detection regexes in priority order.
var patterns = []*regexp.Regexp{
	// JSON "password" members, as found in a stored record list
	regexp.MustCompile(`(?i)"password"\s*:\s*"(?:[^"\\]|\\.)*"`),
	// Inline password assignments
	regexp.MustCompile(`(?i)password\s*[:=]\s*\S+`),
	// Bearer tokens, require minimum 20-char token to avoid false positives
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]{20,}=*`),
	// JWT tokens (three base64url segments)
	regexp.MustCompile(`eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+`),
}

// Redact replaces known secret patterns in input with [REDACTED].
// Line structure is preserved.
func Redact(input string) string {
	for _, re := range patterns {
		input = re.ReplaceAllStringFunc(input, func(match string) string {
			if strings.HasPrefix(match, `"`) {
				return `"password":"` + redacted + `"`
			}
			return redacted
		})
	}
	return input
}

// Password returns a fixed-width mask for p, or "" when p is empty, so output
// never leaks the password length.
func Password(p string) string {
	if p == "" {
		return ""
	}
	return mask
}
