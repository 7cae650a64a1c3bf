package cookie

import (
	"net/http"

	"github.com/plazakit/plaza/pkg/config"
)

// DefaultPrefix names application cookies when the configuration
// carries no garden.cookie.name.
const DefaultPrefix = "plaza"

// FromConfig builds a Manager from the platform cookie configuration:
// garden.cookie.name, .domain, .path, .secure, and .salt. Explicit
// options apply on top.
func FromConfig(cfg *config.Config, opts ...Option) *Manager {
	base := []Option{
		WithPrefix(cfg.String("garden.cookie.name", DefaultPrefix)),
		WithDomain(cfg.String("garden.cookie.domain", "")),
		WithPath(cfg.String("garden.cookie.path", "/")),
		WithSecure(cfg.Bool("garden.cookie.secure", false)),
		WithSecret(cfg.String("garden.cookie.salt", "")),
	}
	return New(append(base, opts...)...)
}

// AppName returns the full name of an application cookie.
func (m *Manager) AppName(name string) string {
	prefix := m.prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-app-" + name
}

// AppSet writes an application cookie under the configured prefix.
func (m *Manager) AppSet(w http.ResponseWriter, name, value string, maxAge int) {
	m.Set(w, m.AppName(name), value, maxAge)
}

// AppGet reads an application cookie written by AppSet.
func (m *Manager) AppGet(r *http.Request, name string) (string, error) {
	return m.Get(r, m.AppName(name))
}

// AppDelete expires an application cookie.
func (m *Manager) AppDelete(w http.ResponseWriter, name string) {
	m.Delete(w, m.AppName(name))
}
