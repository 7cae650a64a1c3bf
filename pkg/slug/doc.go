// Package slug generates URL-safe slugs with Unicode normalization.
//
// Discussion and category paths embed a slug of the title:
//
//	s := slug.Make("What's new in 3.2?")
//	// "what-s-new-in-3-2"
//
//	s = slug.Make("Café & Restaurant Reviews")
//	// "cafe-restaurant-reviews"
//
// Latin diacritics fold to ASCII; scripts without an ASCII base form
// (Cyrillic, CJK) drop out entirely, so callers should pad such titles:
//
//	s = slug.Make(title, slug.MinLength(8))
//
// # Options
//
//	slug.Make("Long Article Title", slug.MaxLength(20), slug.WithSuffix(6))
//	// "long-article-x3k7f9"
//
//	slug.Make("Product Name", slug.Separator("_"))
//	// "product_name"
//
//	slug.Make("admin", slug.ReservedSlugs("admin", "api"))
//	// "admin-k7x2m4"
//
// MaxLength and MinLength count runes. CustomReplace and StripChars
// run before slugification, so "&" can become "and" instead of a
// separator.
package slug
