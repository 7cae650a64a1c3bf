// Package locale provides locale-specific rendering rules for numbers,
// currency, percentages, dates, and times, plus CLDR-style plural
// rules. The format package consumes these rules when expanding message
// template tags like {Price,currency} and {Count,plural,comment,comments}.
//
// A Format is immutable after creation and safe for concurrent use:
//
//	f := locale.DeDE()
//	f.Currency(19.99)            // "19,99 €"
//	f.Number(1234567.5)          // "1.234.567,5"
//	f.Date(t, locale.DateShort)  // "07.02.2026"
//
// Plural rules map a count onto CLDR categories; Select covers the
// common two-form case:
//
//	rule := locale.PluralRuleForLanguage("ru")
//	locale.Select(rule, 3, "comment", "comments")
package locale
