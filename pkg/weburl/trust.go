package weburl

import (
	"net/http"
	"net/url"
	"strings"
)

// IsTrustedDomain reports whether a URL or bare host belongs to the
// site itself or to a registered trusted domain. Wildcard patterns
// match both subdomains and the bare base domain.
func (b *Builder) IsTrustedDomain(urlOrHost string) bool {
	host := hostOf(urlOrHost)
	if host == "" {
		return false
	}

	if host == b.bareHost {
		return true
	}

	for _, tp := range b.trusted {
		if tp.wildcard != nil {
			if tp.wildcard.Match(host) || host == tp.base {
				return true
			}
			continue
		}
		if host == tp.raw {
			return true
		}
	}

	return false
}

// IsSafeURL reports whether a raw URL is safe to echo into a Location
// header or anchor: it parses, carries no userinfo, uses http(s) or no
// scheme, and points at the site's own host (or no host at all).
func (b *Builder) IsSafeURL(raw string) bool {
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.User != nil {
		return false
	}
	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return true
	}

	return normalizeHost(parsed.Host) == b.bareHost
}

// SafeURL resolves a destination to an absolute URL on a trusted host.
// Site-relative destinations resolve against the web root; absolute
// destinations on untrusted hosts, and anything with userinfo or a
// non-http scheme, collapse to the home URL.
func (b *Builder) SafeURL(dest string) string {
	if dest == "" {
		return b.HomeURL()
	}

	parsed, err := url.Parse(dest)
	if err != nil || parsed.User != nil {
		return b.HomeURL()
	}

	switch {
	case parsed.Scheme == "http" || parsed.Scheme == "https":
		if b.IsTrustedDomain(parsed.Host) {
			return dest
		}
		return b.HomeURL()
	case parsed.Scheme != "":
		return b.HomeURL()
	case parsed.Host != "":
		// Scheme-relative destination adopts the site scheme.
		if b.IsTrustedDomain(parsed.Host) {
			return b.scheme + ":" + dest
		}
		return b.HomeURL()
	default:
		return b.URL(dest, true)
	}
}

// SafeRedirect issues a redirect to the SafeURL resolution of dest.
// Zero or non-3xx codes become 302. Untrusted destinations land on the
// home page rather than leaving the site.
func (b *Builder) SafeRedirect(w http.ResponseWriter, r *http.Request, dest string, code int) {
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		code = http.StatusFound
	}
	http.Redirect(w, r, b.SafeURL(dest), code)
}

// hostOf extracts the host part from a URL, scheme-relative URL,
// host/path fragment, or bare host.
func hostOf(urlOrHost string) string {
	s := strings.TrimSpace(urlOrHost)
	if s == "" {
		return ""
	}

	switch {
	case strings.Contains(s, "://"):
		parsed, err := url.Parse(s)
		if err != nil {
			return ""
		}
		return normalizeHost(parsed.Host)
	case strings.HasPrefix(s, "//"):
		parsed, err := url.Parse(s)
		if err != nil {
			return ""
		}
		return normalizeHost(parsed.Host)
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	if s == "" || strings.ContainsAny(s, " @") {
		return ""
	}
	return normalizeHost(s)
}
