package format

import (
	"context"
	"fmt"

	"github.com/plazakit/plaza/pkg/locale"
	"github.com/plazakit/plaza/pkg/translate"
)

// M is template substitution data. Values may be scalars, nested maps,
// structs, user ids, or slices of user ids depending on the
// placeholder that consumes them.
type M = map[string]any

// User is the minimal profile the interpreter needs for user, you, and
// gender placeholders.
type User struct {
	ID     int64
	Name   string
	Gender string // "m", "f", or "" when unspecified
}

// UserResolver looks up users referenced by id in templates.
type UserResolver interface {
	UserByID(ctx context.Context, id int64) (*User, error)
}

// URLBuilder renders site URLs; *weburl.Builder satisfies it.
type URLBuilder interface {
	URL(path string, withDomain bool) string
	ExternalURL(path string) string
}

// MentionLinker rewrites @mentions in sanitized HTML, typically
// mentions.Link bound to a resolver.
type MentionLinker func(html string) string

// Formatter renders message templates and user content. It is
// immutable after creation and safe for concurrent use.
type Formatter struct {
	locale      *locale.Format
	translator  *translate.Translator
	users       UserResolver
	site        URLBuilder
	mentions    MentionLinker
	viewerID    int64
	maxUserList int
}

// Option configures a Formatter during construction.
type Option func(*Formatter) error

// New creates a Formatter. Without options it renders with US English
// locale rules, no user resolution, and no site URLs.
func New(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		maxUserList: 5,
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if f.locale == nil {
		if f.translator != nil {
			f.locale = f.translator.Format()
		} else {
			f.locale = locale.EnUS()
		}
	}
	if f.translator == nil {
		catalog, err := translate.New()
		if err != nil {
			return nil, err
		}
		f.translator = translate.NewTranslator(catalog, "", f.locale)
	}

	return f, nil
}

// WithLocale sets the rendering rules for numbers, currency, and dates.
func WithLocale(l *locale.Format) Option {
	return func(f *Formatter) error {
		if l == nil {
			return ErrNilLocale
		}
		f.locale = l
		return nil
	}
}

// WithTranslator sets the translator used by plural, t, and the
// you/pronoun substitutions. Its locale format also becomes the
// default when WithLocale is not given.
func WithTranslator(t *translate.Translator) Option {
	return func(f *Formatter) error {
		if t == nil {
			return ErrNilTranslator
		}
		f.translator = t
		return nil
	}
}

// WithUserResolver enables user, you, and gender placeholders to look
// up users by id.
func WithUserResolver(r UserResolver) Option {
	return func(f *Formatter) error {
		f.users = r
		return nil
	}
}

// WithSite enables url, exurl, and user anchor hrefs.
func WithSite(site URLBuilder) Option {
	return func(f *Formatter) error {
		f.site = site
		return nil
	}
}

// WithViewer sets the viewing user for "you" substitution. Zero means
// a guest viewer.
func WithViewer(userID int64) Option {
	return func(f *Formatter) error {
		f.viewerID = userID
		return nil
	}
}

// WithMaxUserList caps how many users render by name before the rest
// collapse into "and N others".
func WithMaxUserList(n int) Option {
	return func(f *Formatter) error {
		if n < 1 {
			return ErrInvalidUserList
		}
		f.maxUserList = n
		return nil
	}
}

// WithMentionLinker installs the mention rewriter applied by HTML.
func WithMentionLinker(linker MentionLinker) Option {
	return func(f *Formatter) error {
		f.mentions = linker
		return nil
	}
}

// Viewer returns a shallow copy of the Formatter bound to a different
// viewing user. Handlers derive a per-request Formatter this way
// instead of rebuilding one.
func (f *Formatter) Viewer(userID int64) *Formatter {
	clone := *f
	clone.viewerID = userID
	return &clone
}
