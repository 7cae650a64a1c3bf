package proxy

import "errors"

var (
	// ErrUnsupportedScheme is returned for target URLs that are not
	// http or https.
	ErrUnsupportedScheme = errors.New("proxy: unsupported scheme")

	// ErrTooManyRedirects is returned when a redirect chain exceeds
	// the configured cap.
	ErrTooManyRedirects = errors.New("proxy: too many redirects")

	// ErrInsecureRedirect is returned when an https target redirects
	// to plain http while redirects are being followed.
	ErrInsecureRedirect = errors.New("proxy: refusing https to http redirect")

	// ErrBodyTooLarge is returned when a response body exceeds the
	// configured size cap.
	ErrBodyTooLarge = errors.New("proxy: response body too large")
)
