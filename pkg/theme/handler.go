package theme

import (
	"encoding/json"
	"net/http"

	"github.com/plazakit/plaza/pkg/config"
)

// Handler serves the banner variable tree as JSON. Variables are
// recomputed per request so runtime configuration writes show up
// without a restart.
func Handler(cfg *config.Config, overrides ...Override) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Variables(cfg, overrides...))
	})
}

// ContentHandler serves the content banner variant.
func ContentHandler(cfg *config.Config, overrides ...Override) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ContentBanner(cfg, overrides...))
	})
}
