// Package util provides common string helpers for host payload handling.
package util

import "strings"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// FixEscapeQuotes replaces escaped double quotes ("") with single double quotes (").
func FixEscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// ParseBracketList parses a host token list of the form [a,b,c] into its
// elements, trimming whitespace and quotes per element. An empty list []
// (or a blank string) yields nil.
func ParseBracketList(s string) []string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		s = s[1 : len(s)-1]
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, FixEscapeQuotes(TrimQuotes(strings.TrimSpace(p))))
	}
	return out
}

// ParseBool interprets the host's boolean tokens. The host serializes
// booleans as "true"/"false" but older addon versions send "1"/"0".
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true
	default:
		return false
	}
}
