// Package weburl builds site URLs, asset URLs with cache busting, and
// trust-checked redirect targets for a community site.
//
// A Builder is configured once from the canonical site URL and answers
// every URL question after that. It renders web-root-relative paths,
// absolute URLs, versioned asset URLs, and external (canonical) URLs
// for embedded or syndicated contexts.
//
// # Basic Usage
//
//	site, err := weburl.New("https://forum.example.com/board",
//		weburl.WithVersion("20260825"),
//		weburl.WithTrustedDomains("*.example.com", "partner.net"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	site.URL("/discussions", false)      // "/board/discussions"
//	site.URL("/discussions", true)       // "https://forum.example.com/board/discussions"
//	site.Asset("/js/app.js", false, true) // "/board/js/app.js?v=20260825"
//
// # Path Spellings
//
// URL accepts the spellings the view layer historically produced:
// "" and "/" for the web root, "/x" and "~/x" and "x" for
// web-root-relative paths, and full or scheme-relative URLs, which pass
// through untouched.
//
// # Open Redirect Protection
//
// SafeURL resolves a user-supplied destination and collapses anything
// pointing at an untrusted host to the home page. SafeRedirect wraps it
// for handlers:
//
//	site.SafeURL("/profile")            // stays on site
//	site.SafeURL("https://evil.example") // home URL
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		site.SafeRedirect(w, r, r.URL.Query().Get("Target"), http.StatusFound)
//	}
//
// Trusted domains are exact hosts or "*.example.com" wildcard patterns;
// wildcards also match the bare base domain. The site's own host is
// always trusted.
package weburl
