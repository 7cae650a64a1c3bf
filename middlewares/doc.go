// Package middlewares provides standard net/http middleware for the
// platform daemon. Every middleware has the canonical
// func(http.Handler) http.Handler shape, so they compose with chi's
// Use and with plain ServeMux setups alike.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. It checks
// incoming headers for existing IDs or generates short sortable ones.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID())
//
// Use RequestIDExtractor() with the logger factory for automatic
// request_id in all log entries:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover catches handler panics, logs them with stack traces, and
// responds 500. Customize the response for JSON APIs:
//
//	r.Use(middlewares.Recover(
//		middlewares.WithRecoverLogger(log),
//		middlewares.WithRecoverHandler(func(w http.ResponseWriter, r *http.Request, pe *middlewares.PanicError) {
//			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
//		}),
//	))
//
// # Real IP
//
// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP so
// session tracking and logging see the actual client. Only mount it
// behind a proxy you control.
//
// # Session
//
// Session loads the visitor's session into the request context and
// creates guest sessions on first contact:
//
//	r.Use(middlewares.Session(sessionManager))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess := middlewares.GetSession(r)
//		if !sess.Can(permission.DiscussionsAdd) { ... }
//	}
//
// # Locale
//
// Locale resolves the request language (cookie, then Accept-Language)
// and stores a ready Translator in the context:
//
//	r.Use(middlewares.Locale(catalog))
//
//	tr := middlewares.GetTranslator(r.Context())
//	title := tr.T("discussions.title", "Discussions")
//
// # CORS and Timeout
//
// CORS handles preflight and response headers for embedded widgets
// calling the JSON API from customer domains. Timeout attaches a
// deadline to the request context.
//
// # Recommended Order
//
//	r.Use(
//		middlewares.RealIP(),     // first: fix RemoteAddr for everything below
//		middlewares.RequestID(),  // assign ID for all subsequent logging
//		middlewares.Recover(...), // catch panics from handlers
//		middlewares.CORS(),       // answer preflight early
//		middlewares.Session(sm),  // needs RealIP for correct session IPs
//		middlewares.Timeout(30*time.Second),
//	)
package middlewares
