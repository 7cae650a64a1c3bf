package proxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/plazakit/plaza/pkg/logger"
)

// Inbound headers scrubbed beyond the forwarding headers ReverseProxy
// already strips before Rewrite runs.
var inboundScrub = []string{"X-Real-IP", "True-Client-IP"}

// Upstream response headers scrubbed so the legacy stack is not
// advertised to visitors.
var responseScrub = []string{"Server", "X-Powered-By"}

type handlerConfig struct {
	log     *slog.Logger
	trusted func(urlOrHost string) bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerConfig)

// WithHandlerLogger sets the logger for upstream failures.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(cfg *handlerConfig) {
		if log != nil {
			cfg.log = log
		}
	}
}

// WithTrustedHosts gates the proxy on a host check, typically
// weburl.Builder.IsTrustedDomain. A target outside the trusted set
// answers 403 instead of proxying.
func WithTrustedHosts(fn func(urlOrHost string) bool) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.trusted = fn
	}
}

// Handler reverse-proxies requests to target, for mounting legacy
// platform paths into the daemon's router. Forwarding headers are
// rebuilt from the actual connection so clients cannot spoof them, and
// upstream identification headers are scrubbed from responses.
func Handler(target *url.URL, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{log: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.trusted != nil && !cfg.trusted(target.Host) {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg.log.ErrorContext(r.Context(), "refusing to proxy to untrusted host",
				"host", target.Host)
			http.Error(w, "upstream not trusted", http.StatusForbidden)
		})
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			for _, h := range inboundScrub {
				pr.Out.Header.Del(h)
			}
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			for _, h := range responseScrub {
				resp.Header.Del(h)
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			cfg.log.ErrorContext(r.Context(), "legacy proxy upstream error",
				"target", target.Host, "error", err)
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		},
	}
}
