package sanitize_test

import (
	"strings"
	"testing"

	"tutorlink/messaging/internal/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestClean_PlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "hello world", sanitize.Clean("hello world"))
}

func TestClean_StripsScriptIncludingPayload(t *testing.T) {
	assert.Equal(t, "hello", sanitize.Clean("<script>alert(1)</script>hello"))
}

func TestClean_StripsTagsKeepsText(t *testing.T) {
	assert.Equal(t, "bold and linked", sanitize.Clean(`<b>bold</b> and <a href="http://evil">linked</a>`))
}

func TestClean_DropsAttributes(t *testing.T) {
	out := sanitize.Clean(`<img src=x onerror="alert(1)">see this`)
	assert.Equal(t, "see this", out)
	assert.NotContains(t, out, "onerror")
}

func TestClean_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hi", sanitize.Clean("  hi \n"))
}

// Entity-encoded markup must not survive as live tags: unescaping the
// stripped text can reveal another layer of markup, which gets stripped in
// turn.
func TestClean_EntityEncodedMarkupNeutralized(t *testing.T) {
	out := sanitize.Clean("&lt;img src=x onerror=alert(1)&gt;hello")
	assert.Equal(t, "hello", out)
	assert.NotContains(t, out, "<")
}

func TestClean_DoubleEncodedMarkupNeutralized(t *testing.T) {
	out := sanitize.Clean("&amp;lt;script&amp;gt;x()&amp;lt;/script&amp;gt;hey")
	assert.Equal(t, "hey", out)
	assert.NotContains(t, out, "<")
}

// Harmless uses of angle brackets and ampersands round-trip unchanged.
func TestClean_ComparisonTextPreserved(t *testing.T) {
	assert.Equal(t, "a < b && b > c", sanitize.Clean("a < b && b > c"))
}

// Sanitizing already-sanitized text returns it unchanged.
func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"<div><script>x()</script>nested</div> tail",
		"multi word message with punctuation!",
		"&lt;b&gt;still here&lt;/b&gt;",
		"a < b && b > c",
	}
	for _, in := range inputs {
		once := sanitize.Clean(in)
		assert.Equal(t, once, sanitize.Clean(once), "input %q", in)
	}
}

func TestClean_LongContentSurvives(t *testing.T) {
	long := strings.Repeat("a", 3000)
	assert.Equal(t, long, sanitize.Clean(long))
}
