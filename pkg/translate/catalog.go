package translate

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/plazakit/plaza/pkg/locale"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// Catalog holds translated message definitions keyed by code. Codes are
// free-form strings; conventionally either a stable identifier
// ("discussions.empty") or the source-language phrase itself. The
// catalog is immutable after creation and safe for concurrent use.
type Catalog struct {
	// Key format: "lang:code".
	messages map[string]string

	// Custom plural rules per language. Languages without an entry use
	// locale.PluralRuleForLanguage.
	pluralRules map[string]locale.PluralRule

	// Called when a code has no definition in any fallback language.
	missingHandler func(lang, code string)

	defaultLang string
	languages   []string
}

// Option configures a Catalog during construction.
type Option func(*Catalog) error

// New creates a Catalog with the given options. All configuration
// happens during construction, making the instance immutable and
// thread-safe from creation.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		messages:    make(map[string]string),
		pluralRules: make(map[string]locale.PluralRule),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	c.languages = c.buildLanguagesList()

	return c, nil
}

// Lookup finds the definition for a code, trying the exact language,
// its base language ("en" for "en-US"), and finally the default
// language. The second return reports whether any definition was found.
func (c *Catalog) Lookup(lang, code string) (string, bool) {
	if msg, ok := c.messages[messageKey(lang, code)]; ok {
		return msg, true
	}

	if base := baseLanguage(lang); base != lang {
		if msg, ok := c.messages[messageKey(base, code)]; ok {
			return msg, true
		}
	}

	if lang != c.defaultLang && baseLanguage(lang) != c.defaultLang {
		if msg, ok := c.messages[messageKey(c.defaultLang, code)]; ok {
			return msg, true
		}
	}

	return "", false
}

// Languages returns the list of languages the catalog carries
// definitions for, default language first.
func (c *Catalog) Languages() []string {
	return c.languages
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// pluralRule resolves the plural rule for a language, falling back from
// the exact tag to its base language to the built-in rule table.
func (c *Catalog) pluralRule(lang string) locale.PluralRule {
	if rule, ok := c.pluralRules[lang]; ok {
		return rule
	}
	if base := baseLanguage(lang); base != lang {
		if rule, ok := c.pluralRules[base]; ok {
			return rule
		}
	}
	return locale.PluralRuleForLanguage(lang)
}

func (c *Catalog) buildLanguagesList() []string {
	langSet := make(map[string]bool)
	for key := range c.messages {
		if i := strings.IndexByte(key, ':'); i > 0 {
			langSet[key[:i]] = true
		}
	}
	delete(langSet, c.defaultLang)

	languages := make([]string, 0, len(langSet)+1)
	languages = append(languages, c.defaultLang)

	others := make([]string, 0, len(langSet))
	for lang := range langSet {
		others = append(others, lang)
	}
	sort.Strings(others)

	return append(languages, others...)
}

func messageKey(lang, code string) string {
	return lang + ":" + code
}

// baseLanguage strips the region from a language tag ("en-US" -> "en").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}

// flattenDefinitions converts nested definition maps into dotted codes.
// Scalar leaves are stringified.
func flattenDefinitions(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenDefinitions(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
