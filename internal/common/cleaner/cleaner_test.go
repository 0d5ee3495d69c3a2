package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanStripsTagsAndScripts(t *testing.T) {
	c := New(Config{})

	out := c.Clean(`<div><script>alert(1)</script><style>.x{}</style>
		<p>Senior engineer role.</p><ul><li>Go</li><li>Postgres</li></ul></div>`)

	assert.Contains(t, out, "Senior engineer role.")
	assert.Contains(t, out, "- Go")
	assert.Contains(t, out, "- Postgres")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, ".x{}")
}

func TestCleanMalformedHTMLDegrades(t *testing.T) {
	c := New(Config{})

	out := c.Clean("<div><p>unclosed <b>content")
	assert.Contains(t, out, "unclosed")
	assert.Contains(t, out, "content")
}

func TestCleanDropsExactlyBoilerplateLines(t *testing.T) {
	c := New(Config{})

	in := "We are hiring a plumber.\nApply now\nGreat team culture.\nSave job\nCall us today."
	out := c.Clean(in)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "We are hiring a plumber.")
	assert.Contains(t, out, "Great team culture.")
	assert.Contains(t, out, "Call us today.")
	assert.NotContains(t, out, "Apply now")
	assert.NotContains(t, out, "Save job")
}

func TestCleanKeepsSentencesContainingPhraseWords(t *testing.T) {
	c := New(Config{})

	// "applying" must not trip the "apply now" denylist entry, and long
	// real sentences are kept even when a phrase appears inside them.
	in := "Candidates applying now will be contacted within a week, so apply now while the role is open."
	out := c.Clean(in)
	assert.Equal(t, in, out)
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	c := New(Config{})

	out := c.Clean("First   paragraph.\n\n\n\n\nSecond    paragraph.")
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", out)
}

func TestCleanEmptyInput(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, "", c.Clean(""))
	assert.Equal(t, "", c.Clean("   \n\t "))
}

func TestCleanCustomDenylist(t *testing.T) {
	c := New(Config{ExtraBoilerplate: []string{"powered by jobboard"}})

	out := c.Clean("Real content.\nPowered by JobBoard\nMore content.")
	assert.NotContains(t, out, "Powered by JobBoard")
	assert.Contains(t, out, "Real content.")
}

func TestMinimalHTMLParagraphsAndLists(t *testing.T) {
	c := New(Config{})

	text := "ABOUT THE ROLE\n\nWe need a developer.\n\n- Write Go\n- Review code\n\n1. Apply\n2. Interview"
	out := c.MinimalHTML(text)

	assert.Contains(t, out, "<h3>ABOUT THE ROLE</h3>")
	assert.Contains(t, out, "<p>We need a developer.</p>")
	assert.Contains(t, out, "<ul><li>Write Go</li><li>Review code</li></ul>")
	assert.Contains(t, out, "<ol><li>Apply</li><li>Interview</li></ol>")
}

func TestMinimalHTMLEscapes(t *testing.T) {
	c := New(Config{})
	out := c.MinimalHTML("a < b & c")
	assert.Equal(t, "<p>a &lt; b &amp; c</p>", out)
}

func TestSanitizeKeepsAllowedAttrs(t *testing.T) {
	c := New(Config{})

	out := c.Sanitize(`<p onclick="evil()" class="desc">Text <a href="https://x.com" target="_blank">link</a></p>`)
	require.NotEmpty(t, out)
	assert.Contains(t, out, `class="desc"`)
	assert.Contains(t, out, `href="https://x.com"`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "target")
}
