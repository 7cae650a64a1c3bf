// Package clientip resolves the originating client address of an HTTP
// request. Reverse proxies and load balancers rewrite the connection
// address, so the real client is recovered from forwarding headers
// before falling back to RemoteAddr.
//
// Header values are attacker-controlled unless a trusted proxy sets
// them. Strip or overwrite X-Forwarded-For and X-Real-IP at the edge
// before trusting the result for rate limiting or ban checks.
package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// GetIP returns the client IP address for a request.
//
// Resolution order: the first valid address in X-Forwarded-For, then
// X-Real-IP, then the host part of RemoteAddr. Returns an empty string
// only when every candidate fails to parse.
func GetIP(r *http.Request) string {
	if ip, ok := fromForwardedFor(r.Header.Get("X-Forwarded-For")); ok {
		return ip
	}
	if ip, ok := parse(r.Header.Get("X-Real-IP")); ok {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. in tests or unix sockets.
		host = r.RemoteAddr
	}
	if ip, ok := parse(host); ok {
		return ip
	}
	return ""
}

// fromForwardedFor picks the first parseable entry of a comma-separated
// X-Forwarded-For chain. The first entry is the original client; later
// entries are the proxies the request passed through.
func fromForwardedFor(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	for part := range strings.SplitSeq(header, ",") {
		if ip, ok := parse(part); ok {
			return ip, true
		}
	}
	return "", false
}

// parse validates and canonicalizes a single address candidate.
func parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", false
	}
	return addr.String(), true
}
