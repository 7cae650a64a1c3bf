// Package mentions finds and links @name mentions in user-authored
// HTML fragments.
//
// The tokenizer walks tag boundaries rather than parsing a full DOM:
// text inside <a> is skipped because already-linked mentions were
// resolved on an earlier pass, and text inside <code> and <pre> is
// skipped so code samples never ping users. Both skips can be lifted
// per call.
//
// Two spellings are recognized: @name for names made of letters,
// digits, underscores, dashes, and dots, and @"name with spaces" for
// anything else. Trailing dots on bare names are treated as sentence
// punctuation, not part of the name.
//
//	mentions.Extract(`hey @alice, see <code>@decorator</code>`)
//	// ["alice"]
//
// Link rewrites resolvable mentions into profile anchors:
//
//	html := mentions.Link(post, func(name string) (string, bool) {
//		u, err := users.ByName(ctx, name)
//		if err != nil {
//			return "", false
//		}
//		return "/profile/" + u.Slug, true
//	}, site)
package mentions
