package middlewares

import (
	"net/http"

	"github.com/plazakit/plaza/pkg/clientip"
)

// RealIP returns middleware that rewrites RemoteAddr with the client
// address resolved from forwarding headers (X-Forwarded-For, then
// X-Real-IP). Downstream handlers and session tracking then see the
// original client instead of the proxy.
//
// Mount only behind a trusted proxy that controls those headers;
// otherwise clients can spoof their address.
func RealIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := clientip.GetIP(r); ip != "" {
				r.RemoteAddr = ip
			}
			next.ServeHTTP(w, r)
		})
	}
}
