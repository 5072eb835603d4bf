// Package htmlsanitize strips markup from user-supplied text fields.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// maxPasses bounds how many layers of entity-encoded markup are peeled.
const maxPasses = 8

// PlainText removes every HTML element from s and returns the remaining
// text, trimmed. Entities are decoded so that "Tom & Jerry" round-trips
// unchanged. Decoding can expose encoded markup such as "&lt;b&gt;", so
// sanitizing repeats until the text stops changing.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	p := policy()
	for range maxPasses {
		next := html.UnescapeString(p.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// Still changing after maxPasses: drop anything that could open a tag.
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(s))
}

// PlainTextAll applies PlainText to every element of in.
func PlainTextAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = PlainText(s)
	}
	return out
}
