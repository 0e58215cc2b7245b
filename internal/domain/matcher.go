package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// wildcardPrefix marks a pattern that matches a base domain and all of its subdomains.
const wildcardPrefix = "*."

// Normalize returns the comparable form of a domain or list entry.
// The scheme prefix and a leading "www." are removed, the result is
// lowercased and internationalized labels are converted to punycode.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = toASCII(s)
	s = strings.TrimPrefix(s, "www.")
	return s
}

// toASCII converts a host or "*."-prefixed pattern to its IDNA ASCII form.
// ASCII input, and input IDNA rejects, is returned unchanged.
func toASCII(s string) string {
	if isASCII(s) {
		return s
	}
	prefix := ""
	if rest, ok := strings.CutPrefix(s, wildcardPrefix); ok {
		prefix, s = wildcardPrefix, rest
	}
	if ascii, err := idna.Lookup.ToASCII(s); err == nil && ascii != "" {
		return prefix + ascii
	}
	return prefix + s
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsWildcard reports whether the entry is a "*."-prefixed wildcard pattern.
func IsWildcard(pattern string) bool {
	return strings.HasPrefix(Normalize(pattern), wildcardPrefix)
}

// Matches reports whether candidate is covered by the list entry pattern.
func Matches(candidate, pattern string) bool {
	c := Normalize(candidate)
	p := Normalize(pattern)
	if c == "" || p == "" {
		return false
	}

	if c == p {
		return true
	}
	if strings.HasSuffix(c, "."+p) {
		return true
	}

	if base, ok := strings.CutPrefix(p, wildcardPrefix); ok {
		if base == "" {
			return false
		}
		return c == base || strings.HasSuffix(c, "."+base)
	}

	return false
}

// MatchesAny returns the first pattern that covers candidate.
// The second return value is false when no pattern matches.
func MatchesAny(candidate string, patterns []string) (string, bool) {
	for _, p := range patterns {
		if Matches(candidate, p) {
			return p, true
		}
	}
	return "", false
}
