package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBBCodeToHTMLBasicTags(t *testing.T) {
	assert.Equal(t, "<strong>bold</strong>", BBCodeToHTML("[b]bold[/b]"))
	assert.Equal(t, "<em>slanted</em>", BBCodeToHTML("[i]slanted[/i]"))
	assert.Equal(t, "<u>under</u>", BBCodeToHTML("[u]under[/u]"))
}

func TestBBCodeToHTMLLinks(t *testing.T) {
	assert.Equal(t,
		`<a href="https://example.com">https://example.com</a>`,
		BBCodeToHTML("[url]https://example.com[/url]"))
	assert.Equal(t,
		`<a href="https://example.com">home</a>`,
		BBCodeToHTML("[url=https://example.com]home[/url]"))
}

func TestBBCodeToHTMLNewlines(t *testing.T) {
	assert.Equal(t, "one<br>two", BBCodeToHTML("one\ntwo"))
}

func TestBioStripsScript(t *testing.T) {
	out := Bio(`hello <script>alert("x")</script>world`)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestBioKeepsAllowedMarkup(t *testing.T) {
	out := Bio("[b]treasury[/b] of [quote]Ling[/quote]")

	assert.Contains(t, out, "<strong>treasury</strong>")
	assert.Contains(t, out, "<blockquote>Ling</blockquote>")
}

func TestBioEmpty(t *testing.T) {
	assert.Equal(t, "", Bio(""))
}
