// Package security keeps provider credentials out of logs, URLs shown to
// users and error bodies.
package security

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	tmdbKeyPattern = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
)

// CredentialParam is the query parameter TMDB reads the v3 API key from.
const CredentialParam = "api_key"

// SanitizeAPIKey trims whitespace and removes characters that could be used
// for URL or header injection.
func SanitizeAPIKey(apiKey string) string {
	return unsafeKeyChars.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// IsValidTMDBKey reports whether apiKey looks like a TMDB v3 key
// (32 hexadecimal characters).
func IsValidTMDBKey(apiKey string) bool {
	return tmdbKeyPattern.MatchString(apiKey)
}

// MaskAPIKey creates a masked version for logging (shows only first/last few chars)
func MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}

	if len(apiKey) <= 8 {
		return "[***]"
	}

	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

// RedactURL replaces every credential parameter value in rawURL with
// "<redacted>". Unparseable input is returned with the key value masked by
// plain string replacement when key is non-empty.
func RedactURL(rawURL, key string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if key == "" {
			return rawURL
		}
		return strings.ReplaceAll(rawURL, key, "<redacted>")
	}
	q := u.Query()
	if _, ok := q[CredentialParam]; !ok {
		return rawURL
	}
	for i := range q[CredentialParam] {
		q[CredentialParam][i] = "<redacted>"
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Scrub removes key from an arbitrary message, e.g. a wrapped *url.Error.
func Scrub(msg, key string) string {
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "<redacted>")
}
