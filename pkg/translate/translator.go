package translate

import (
	"time"

	"github.com/plazakit/plaza/pkg/locale"
)

// Translator binds a Catalog to one language and one locale.Format, so
// call sites do not repeat them. For codes the catalog does not carry,
// the caller's default string is the translation of last resort, so
// pages render sensibly before any definition file exists.
type Translator struct {
	catalog  *Catalog
	format   *locale.Format
	rule     locale.PluralRule
	language string
}

// NewTranslator creates a Translator for the given language. An empty
// language selects the catalog's default; a nil format selects the
// predefined locale.Format for the language.
func NewTranslator(catalog *Catalog, language string, format *locale.Format) *Translator {
	if catalog == nil {
		panic("translate: catalog is not provided")
	}
	if language == "" {
		language = catalog.DefaultLanguage()
	}
	if format == nil {
		format = locale.ForLanguage(language)
	}
	return &Translator{
		catalog:  catalog,
		format:   format,
		rule:     catalog.pluralRule(language),
		language: language,
	}
}

// T translates a code. When the catalog has no definition in any
// fallback language, the provided default string is returned instead;
// an empty default falls back to the code itself.
func (t *Translator) T(code, def string, placeholders ...M) string {
	msg, ok := t.catalog.Lookup(t.language, code)
	if !ok {
		if t.catalog.missingHandler != nil {
			t.catalog.missingHandler(t.language, code)
		}
		msg = def
		if msg == "" {
			msg = code
		}
	}
	return replaceMerged(msg, placeholders...)
}

// Plural selects between a singular and plural code by the language's
// plural rule, translates the winner (the code doubles as its own
// default), and injects the count as the {{count}} placeholder.
func (t *Translator) Plural(n int, singular, plural string, placeholders ...M) string {
	code := locale.Select(t.rule, n, singular, plural)

	msg, ok := t.catalog.Lookup(t.language, code)
	if !ok {
		msg = code
	}

	merged := M{"count": n}
	for _, p := range placeholders {
		for key, value := range p {
			merged[key] = value
		}
	}

	return Replace(msg, merged)
}

// Language returns the translator's language tag.
func (t *Translator) Language() string {
	return t.language
}

// Format returns the locale.Format used by this translator.
func (t *Translator) Format() *locale.Format {
	return t.format
}

// Number formats a number with locale-specific separators.
func (t *Translator) Number(n float64) string {
	return t.format.Number(n)
}

// Currency formats an amount with locale-specific currency rules.
func (t *Translator) Currency(amount float64) string {
	return t.format.Currency(amount)
}

// Percent formats a ratio as a percentage (0.5 -> "50%").
func (t *Translator) Percent(n float64) string {
	return t.format.Percent(n)
}

// Date formats a date in the given named style.
func (t *Translator) Date(d time.Time, style locale.DateStyle) string {
	return t.format.Date(d, style)
}

// Time formats the time-of-day portion.
func (t *Translator) Time(d time.Time) string {
	return t.format.Time(d)
}

// DateTime formats the combined date-time layout.
func (t *Translator) DateTime(d time.Time) string {
	return t.format.DateTime(d)
}
