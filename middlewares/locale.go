package middlewares

import (
	"context"
	"net/http"

	"github.com/plazakit/plaza/pkg/locale"
	"github.com/plazakit/plaza/pkg/translate"
)

// DefaultLocaleCookie is the cookie checked for an explicit locale choice.
const DefaultLocaleCookie = "plaza-locale"

type (
	translatorKey struct{}
	languageKey   struct{}
)

// LocaleResolver extracts a language code from a request.
// Return false to fall through to the next resolver.
type LocaleResolver func(r *http.Request) (string, bool)

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	FormatMap     map[string]*locale.Format
	DefaultFormat *locale.Format
	Resolvers     []LocaleResolver
	resolversSet  bool
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleResolvers sets a custom resolver chain, tried in order.
func WithLocaleResolvers(resolvers ...LocaleResolver) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Resolvers = resolvers
		cfg.resolversSet = true
	}
}

// WithLocaleFormatMap sets the language-to-format mapping.
func WithLocaleFormatMap(m map[string]*locale.Format) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.FormatMap = m
	}
}

// WithLocaleDefaultFormat sets the fallback locale format.
func WithLocaleDefaultFormat(f *locale.Format) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.DefaultFormat = f
	}
}

// FromCookie returns a resolver that reads the language from a cookie.
func FromCookie(name string) LocaleResolver {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromAcceptLanguage returns a resolver that negotiates the language
// from the Accept-Language header against the available languages.
func FromAcceptLanguage(available []string) LocaleResolver {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		lang := translate.NegotiateLanguage(header, available)
		return lang, lang != ""
	}
}

// Locale returns middleware that resolves the request language, builds a
// Translator for it, and stores both in the request context. The default
// resolver chain checks the locale cookie, then Accept-Language, then
// falls back to the catalog's default language.
func Locale(catalog *translate.Catalog, opts ...LocaleOption) func(http.Handler) http.Handler {
	cfg := &LocaleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.resolversSet {
		cfg.Resolvers = []LocaleResolver{
			FromCookie(DefaultLocaleCookie),
			FromAcceptLanguage(catalog.Languages()),
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var lang string
			for _, resolve := range cfg.Resolvers {
				if l, ok := resolve(r); ok && l != "" {
					lang = l
					break
				}
			}
			if lang == "" {
				lang = catalog.DefaultLanguage()
			}

			format := cfg.DefaultFormat
			if cfg.FormatMap != nil {
				if f, exists := cfg.FormatMap[lang]; exists {
					format = f
				}
			}
			if format == nil {
				format = locale.ForLanguage(lang)
			}

			tr := translate.NewTranslator(catalog, lang, format)

			ctx := context.WithValue(r.Context(), translatorKey{}, tr)
			ctx = context.WithValue(ctx, languageKey{}, lang)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTranslator extracts the Translator from the context.
// Returns nil if the Locale middleware is not used.
func GetTranslator(ctx context.Context) *translate.Translator {
	if v, ok := ctx.Value(translatorKey{}).(*translate.Translator); ok {
		return v
	}
	return nil
}

// GetLanguage extracts the resolved language from the context.
// Returns an empty string if the Locale middleware is not used.
func GetLanguage(ctx context.Context) string {
	if v, ok := ctx.Value(languageKey{}).(string); ok {
		return v
	}
	return ""
}
