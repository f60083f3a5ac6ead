// Package redact scrubs credentials from text before it is logged or surfaced in errors.
package redact

import "regexp"

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// Authorization: OAuth ... header values
		`(?i)OAuth\s+oauth_[^\r\n]*`,
		// OAuth 1.0a query parameters
		`(oauth_(?:signature|consumer_key|nonce|token))=[^&\s"',]*`,
		// Bearer tokens
		`Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		// Generic key/secret/token/password assignments, including ini lines
		`(?i)\b(key|secret|api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Redact replaces credential patterns in text with [REDACTED].
func Redact(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}
