package mentions

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultMaxNameLength caps mention names; longer runs are treated as
// ordinary text rather than truncated into bogus names.
const defaultMaxNameLength = 64

type options struct {
	includeAnchors bool
	includeCode    bool
	maxNameLength  int
}

// Option adjusts how mentions are located inside markup.
type Option func(*options)

// IncludeAnchors scans text inside <a> tags, which is skipped by
// default because linked mentions were already resolved.
func IncludeAnchors() Option {
	return func(o *options) {
		o.includeAnchors = true
	}
}

// IncludeCode scans text inside <code> and <pre> blocks, which is
// skipped by default so code samples never ping users.
func IncludeCode() Option {
	return func(o *options) {
		o.includeCode = true
	}
}

// WithMaxNameLength overrides the mention name length cap.
func WithMaxNameLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxNameLength = n
		}
	}
}

// Extract returns the names mentioned in a fragment of HTML, in
// first-seen order. Names are matched as @name or @"name with spaces",
// outside of anchors and code blocks by default, and de-duplicated
// case-insensitively keeping the first-seen casing.
func Extract(src string, opts ...Option) []string {
	o := buildOptions(opts)

	var names []string
	seen := make(map[string]bool)

	walk(src, o, func(text string, scannable bool) {
		if !scannable {
			return
		}
		scanText(text, o, func(name string, quoted bool) string {
			key := strings.ToLower(name)
			if !seen[key] {
				seen[key] = true
				names = append(names, name)
			}
			return ""
		})
	})

	return names
}

// ResolveFunc maps a mention name to a site-relative profile path such
// as "/profile/alice". Returning false leaves the mention as plain
// text.
type ResolveFunc func(name string) (string, bool)

// URLRenderer renders a site-relative path, typically a
// *weburl.Builder.
type URLRenderer interface {
	URL(path string, withDomain bool) string
}

// Link rewrites mentions outside skip regions into profile anchors.
// Unresolvable names stay as written; tags and skipped regions pass
// through byte for byte.
func Link(src string, resolve ResolveFunc, site URLRenderer, opts ...Option) string {
	if resolve == nil || site == nil {
		return src
	}

	o := buildOptions(opts)

	var out strings.Builder
	out.Grow(len(src) + len(src)/4)

	walk(src, o, func(text string, scannable bool) {
		if !scannable {
			out.WriteString(text)
			return
		}
		out.WriteString(scanText(text, o, func(name string, quoted bool) string {
			path, ok := resolve(name)
			if !ok {
				return ""
			}
			href := html.EscapeString(site.URL(path, false))
			return `<a class="mention" href="` + href + `">@` + html.EscapeString(name) + `</a>`
		}))
	})

	return out.String()
}

func buildOptions(opts []Option) options {
	o := options{maxNameLength: defaultMaxNameLength}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// walk tokenizes markup into tag and text segments, tracking anchor
// and code nesting, and feeds every segment to emit. Tag segments are
// never scannable; text segments are scannable outside skip regions.
// An unterminated tag is treated as literal text.
func walk(src string, o options, emit func(text string, scannable bool)) {
	var anchorDepth, codeDepth int

	scannable := func() bool {
		if anchorDepth > 0 && !o.includeAnchors {
			return false
		}
		if codeDepth > 0 && !o.includeCode {
			return false
		}
		return true
	}

	i := 0
	for i < len(src) {
		if src[i] == '<' {
			end := strings.IndexByte(src[i+1:], '>')
			if end < 0 {
				emit(src[i:], scannable())
				return
			}
			tag := src[i+1 : i+1+end]
			emit(src[i:i+end+2], false)
			anchorDepth, codeDepth = updateDepths(tag, anchorDepth, codeDepth)
			i += end + 2
			continue
		}

		text := src[i:]
		if next := strings.IndexByte(text, '<'); next >= 0 {
			text = text[:next]
		}
		emit(text, scannable())
		i += len(text)
	}
}

func updateDepths(tag string, anchorDepth, codeDepth int) (int, int) {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.HasPrefix(tag, "!") {
		return anchorDepth, codeDepth
	}

	closing := strings.HasPrefix(tag, "/")
	name := strings.TrimPrefix(tag, "/")
	if i := strings.IndexAny(name, " \t\r\n/"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	if !closing && strings.HasSuffix(tag, "/") {
		// Self-closing tags contain no text.
		return anchorDepth, codeDepth
	}

	switch name {
	case "a":
		if closing {
			anchorDepth = max(0, anchorDepth-1)
		} else {
			anchorDepth++
		}
	case "code", "pre":
		if closing {
			codeDepth = max(0, codeDepth-1)
		} else {
			codeDepth++
		}
	}

	return anchorDepth, codeDepth
}

// scanText locates mentions in a text segment and rebuilds it with the
// callback's replacements; an empty replacement keeps the original
// spelling.
func scanText(text string, o options, replace func(name string, quoted bool) string) string {
	var out strings.Builder
	last := 0
	prev := ' ' // Segment start counts as a boundary.

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '@' || !isBoundary(prev) {
			prev = r
			i += size
			continue
		}

		name, consumed, quoted := scanName(text[i+size:], o.maxNameLength)
		if consumed == 0 {
			prev = r
			i += size
			continue
		}

		end := i + size + consumed
		if repl := replace(name, quoted); repl != "" {
			out.WriteString(text[last:i])
			out.WriteString(repl)
			last = end
		}

		prev, _ = utf8.DecodeLastRuneInString(text[:end])
		i = end
	}

	out.WriteString(text[last:])
	return out.String()
}

// scanName reads a mention name immediately after the @, returning the
// name, the bytes consumed, and whether it was quoted. Quoted names
// accept anything up to the closing quote; bare names start with a
// letter, digit, or underscore and may contain dashes and dots, with
// trailing dots trimmed. A zero consumed count means no valid name.
func scanName(rest string, maxLen int) (string, int, bool) {
	if rest == "" {
		return "", 0, false
	}

	if rest[0] == '"' {
		end := strings.IndexByte(rest[1:], '"')
		if end <= 0 {
			// Unterminated or empty quotes.
			return "", 0, false
		}
		name := rest[1 : 1+end]
		if utf8.RuneCountInString(name) > maxLen || strings.ContainsRune(name, '\n') {
			return "", 0, false
		}
		return name, end + 2, true
	}

	var n int
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if !isNameRune(r, n == 0) {
			break
		}
		n += size
	}
	if n == 0 {
		return "", 0, false
	}

	name := strings.TrimRight(rest[:n], ".")
	if name == "" || utf8.RuneCountInString(name) > maxLen {
		return "", 0, false
	}
	// Trimmed dots stay outside the consumed span so replacements do
	// not swallow trailing punctuation.
	return name, len(name), false
}

func isNameRune(r rune, first bool) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return true
	}
	if first {
		return false
	}
	return r == '-' || r == '.'
}

// isBoundary reports whether a mention may start after this rune.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
