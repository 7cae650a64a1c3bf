package format

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	strictPolicy *bluemonday.Policy
	postPolicy   *bluemonday.Policy
	markdown     goldmark.Markdown
	initOnce     sync.Once
)

func initContent() {
	initOnce.Do(func() {
		// strictPolicy strips all markup, leaving plain text.
		strictPolicy = bluemonday.StrictPolicy()

		// postPolicy allows the formatting tags posts may carry.
		postPolicy = bluemonday.NewPolicy()
		postPolicy.AllowStandardURLs()
		postPolicy.AllowElements(
			"p", "br", "hr",
			"strong", "b", "em", "i", "s", "u",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		postPolicy.AllowAttrs("href").OnElements("a")
		postPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a", "code", "pre")
		postPolicy.RequireNoFollowOnLinks(true)

		markdown = goldmark.New(
			goldmark.WithExtensions(
				extension.Linkify,
				extension.Strikethrough,
				extension.Table,
			),
		)
	})
}

// PlainText strips all markup from a fragment and collapses runs of
// whitespace, leaving text suitable for titles, excerpts, and meta
// descriptions.
func PlainText(s string) string {
	initContent()
	return collapseSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Excerpt shortens a fragment to at most maxLen runes of plain text,
// cutting at a word boundary when one is close and appending an
// ellipsis when anything was dropped.
func Excerpt(s string, maxLen int) string {
	text := PlainText(s)
	if maxLen <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := maxLen
	for i := maxLen; i > maxLen/2; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}

	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace) + "…"
}

// HTML sanitizes a trusted-format HTML fragment down to the allowed
// post markup and links any mentions through the configured linker.
func (f *Formatter) HTML(src string) string {
	initContent()
	out := postPolicy.Sanitize(src)
	if f.mentions != nil {
		out = f.mentions(out)
	}
	return out
}

// Markdown renders a markdown post body to sanitized HTML. Bare links
// are auto-linked and the result passes through the same policy and
// mention linking as HTML.
func (f *Formatter) Markdown(src string) (string, error) {
	initContent()

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return f.HTML(buf.String()), nil
}

func collapseSpace(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = out.Len() > 0
			continue
		}
		if pending {
			out.WriteByte(' ')
			pending = false
		}
		out.WriteRune(r)
	}

	return out.String()
}
