package weburl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// AssetResolver maps a logical asset path to its served location,
// typically from a build manifest or CDN. Returning false falls back to
// the builder's asset root.
type AssetResolver func(path string) (string, bool)

// Builder renders site-relative and absolute URLs for one site. It is
// immutable after creation and safe for concurrent use.
type Builder struct {
	scheme         string
	host           string // as parsed, may carry a port
	bareHost       string // normalized, port stripped
	webRoot        string // "" or "/root" form
	assetRoot      string
	version        string
	externalFormat string
	assetResolver  AssetResolver
	trusted        []trustedPattern
}

type trustedPattern struct {
	raw      string
	base     string // pattern without the "*." prefix, empty for exact patterns
	wildcard glob.Glob
}

// Option configures a Builder during construction.
type Option func(*Builder) error

// New creates a Builder for a site URL such as
// "https://forum.example.com" or "https://example.com/board".
// Any path component becomes the web root.
func New(siteURL string, opts ...Option) (*Builder, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSiteURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrUnsafeScheme
	}
	if parsed.Host == "" {
		return nil, ErrEmptyHost
	}

	b := &Builder{
		scheme:   parsed.Scheme,
		host:     strings.ToLower(parsed.Host),
		bareHost: normalizeHost(parsed.Host),
		webRoot:  strings.TrimRight(parsed.Path, "/"),
	}
	b.assetRoot = b.webRoot

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return b, nil
}

// WithVersion sets the cache-busting version appended to asset URLs.
func WithVersion(version string) Option {
	return func(b *Builder) error {
		b.version = version
		return nil
	}
}

// WithAssetRoot overrides the path prefix for assets. Defaults to the
// site's web root.
func WithAssetRoot(root string) Option {
	return func(b *Builder) error {
		b.assetRoot = strings.TrimRight(root, "/")
		return nil
	}
}

// WithExternalFormat sets the format used by ExternalURL. The string
// must contain a {Path} placeholder, e.g. "https://example.com/board{Path}".
func WithExternalFormat(format string) Option {
	return func(b *Builder) error {
		if format != "" && !strings.Contains(format, "{Path}") {
			return fmt.Errorf("%w: external format needs a {Path} placeholder", ErrInvalidSiteURL)
		}
		b.externalFormat = format
		return nil
	}
}

// WithTrustedDomains registers hosts that SafeURL and SafeRedirect may
// send users to. Patterns are bare hosts ("example.com") or wildcard
// subdomain patterns ("*.example.com", which also matches the bare
// base domain). A single star spans one label; "**.example.com"
// matches any depth. The site's own host needs no entry.
func WithTrustedDomains(patterns ...string) Option {
	return func(b *Builder) error {
		for _, raw := range patterns {
			pattern := strings.ToLower(strings.TrimSpace(raw))
			if pattern == "" {
				continue
			}

			tp := trustedPattern{raw: pattern}
			if strings.Contains(pattern, "*") {
				g, err := glob.Compile(pattern, '.')
				if err != nil {
					return fmt.Errorf("%w: %q: %s", ErrInvalidPattern, raw, err)
				}
				tp.wildcard = g
				tp.base = strings.TrimPrefix(pattern, "*.")
			}
			b.trusted = append(b.trusted, tp)
		}
		return nil
	}
}

// WithAssetResolver installs a manifest or CDN lookup consulted before
// the asset root.
func WithAssetResolver(resolver AssetResolver) Option {
	return func(b *Builder) error {
		b.assetResolver = resolver
		return nil
	}
}

// URL renders a site path. Empty and "/" render the web root; "~/x"
// and "/x" are web-root relative; absolute and scheme-relative URLs
// pass through untouched. Queries and fragments embedded in the path
// are preserved.
func (b *Builder) URL(path string, withDomain bool) string {
	if isAbsoluteURL(path) {
		return path
	}

	rel := b.webRoot + normalizePath(path)

	if !withDomain {
		if rel == "" {
			return "/"
		}
		return rel
	}

	return b.scheme + "://" + b.host + rel
}

// Asset renders an asset path under the asset root, appending the
// cache-busting version when requested. Absolute URLs pass through.
func (b *Builder) Asset(path string, withDomain, withVersion bool) string {
	if isAbsoluteURL(path) {
		return path
	}

	if b.assetResolver != nil {
		if resolved, ok := b.assetResolver(strings.TrimPrefix(normalizePath(path), "/")); ok {
			path = resolved
			if isAbsoluteURL(path) {
				return path
			}
		}
	}

	rel := b.assetRoot + normalizePath(path)
	if withVersion && b.version != "" && !strings.Contains(rel, "?") {
		rel += "?v=" + url.QueryEscape(b.version)
	}

	if !withDomain {
		if rel == "" {
			return "/"
		}
		return rel
	}

	return b.scheme + "://" + b.host + rel
}

// ExternalURL renders the path through the external URL format when
// one is configured, otherwise as a plain absolute URL. Embeds use it
// to point back at the canonical site from syndicated contexts.
func (b *Builder) ExternalURL(path string) string {
	if b.externalFormat == "" {
		return b.URL(path, true)
	}
	return strings.ReplaceAll(b.externalFormat, "{Path}", normalizePath(path))
}

// HomeURL returns the absolute URL of the site root.
func (b *Builder) HomeURL() string {
	return b.URL("", true)
}

// Scheme returns the site scheme.
func (b *Builder) Scheme() string { return b.scheme }

// Host returns the site host as configured, which may include a port.
func (b *Builder) Host() string { return b.host }

// WebRoot returns the web root path ("" for sites served at /).
func (b *Builder) WebRoot() string { return b.webRoot }

// normalizePath converts the accepted path spellings to a "/x" form.
// "" and "/" become "", "~/x" and "x" become "/x".
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "~")
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// isAbsoluteURL reports whether the path already carries a scheme or is
// scheme-relative ("//host/x").
func isAbsoluteURL(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}
	if i := strings.Index(path, "://"); i > 0 {
		return true
	}
	return false
}

// normalizeHost strips the port and lowercases, leaving IPv6 brackets
// intact.
func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(strings.TrimSpace(host))
}
