// Package sanitize strips all markup from user-submitted text before it is
// persisted or broadcast. Sanitizing already-plain text is a no-op.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// maxPasses bounds the strip-unescape loop. Each pass removes one layer of
// entity encoding, so legitimate input converges in one or two passes.
const maxPasses = 8

// Clean removes every tag and attribute from s, including the payload of
// script and style elements, and trims surrounding whitespace.
// Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	// bluemonday entity-escapes the surviving text, and unescaping can in
	// turn reveal markup that was entity-encoded in the input ("&lt;img&gt;"
	// becomes "<img>"). Strip and unescape until the text is stable so no
	// encoding layer can smuggle a tag past the policy, while plain text
	// like "a < b" still round-trips unchanged.
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(policy.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	return strings.TrimSpace(out)
}
