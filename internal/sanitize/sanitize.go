// Package sanitize cleans user-supplied biography text. Input may carry a
// small BBCode dialect which is first converted to HTML, then stripped down
// to an allowlisted subset.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

type bbcodeRule struct {
	pattern *regexp.Regexp
	repl    string
}

// (?s) so quoted blocks may span newlines.
var bbcodeRules = []bbcodeRule{
	{regexp.MustCompile(`(?s)\[b\](.*?)\[/b\]`), `<strong>$1</strong>`},
	{regexp.MustCompile(`(?s)\[i\](.*?)\[/i\]`), `<em>$1</em>`},
	{regexp.MustCompile(`(?s)\[u\](.*?)\[/u\]`), `<u>$1</u>`},
	{regexp.MustCompile(`(?s)\[s\](.*?)\[/s\]`), `<s>$1</s>`},
	{regexp.MustCompile(`(?s)\[url\](.*?)\[/url\]`), `<a href="$1">$1</a>`},
	{regexp.MustCompile(`(?s)\[url=(.*?)\](.*?)\[/url\]`), `<a href="$1">$2</a>`},
	{regexp.MustCompile(`(?s)\[img\](.*?)\[/img\]`), `<img src="$1" alt="Image">`},
	{regexp.MustCompile(`(?s)\[quote\](.*?)\[/quote\]`), `<blockquote>$1</blockquote>`},
	{regexp.MustCompile(`(?s)\[code\](.*?)\[/code\]`), `<code>$1</code>`},
	{regexp.MustCompile(`(?s)\[color=(.*?)\](.*?)\[/color\]`), `<span style="color:$1">$2</span>`},
	{regexp.MustCompile(`(?s)\[size=(.*?)\](.*?)\[/size\]`), `<span style="font-size:$1px">$2</span>`},
	{regexp.MustCompile(`\n`), `<br>`},
	{regexp.MustCompile(`(?s)\[pulse\](.*?)\[/pulse\]`), `<span class="text-pulse">$1</span>`},
	{regexp.MustCompile(`(?s)\[rainbow\](.*?)\[/rainbow\]`), `<span class="rainbow-text">$1</span>`},
}

var bioPolicy = buildBioPolicy()

func buildBioPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("br", "p", "div", "span", "ul", "ol", "li",
		"strong", "em", "u", "s", "blockquote", "code")
	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("class").Globally()
	p.AllowStyles("color", "font-size").Globally()
	p.RequireNoFollowOnLinks(true)
	return p
}

// BBCodeToHTML converts the supported BBCode tags to HTML.
func BBCodeToHTML(text string) string {
	if text == "" {
		return ""
	}
	for _, rule := range bbcodeRules {
		text = rule.pattern.ReplaceAllString(text, rule.repl)
	}
	return text
}

// Bio converts BBCode and strips everything outside the allowed HTML subset.
func Bio(text string) string {
	if text == "" {
		return ""
	}
	return bioPolicy.Sanitize(BBCodeToHTML(text))
}
