// Package normalize cleans user-supplied strings before they are validated
// or stored.
package normalize

import "strings"

// Email trims and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// QueryParam trims a query string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Genres trims each genre, drops blanks and removes repeats (first
// occurrence wins, compared case-insensitively). Returns nil when nothing
// remains.
func Genres(in []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(in))
	for _, g := range in {
		g = Name(g)
		if g == "" {
			continue
		}
		k := strings.ToLower(g)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, g)
	}
	return out
}
