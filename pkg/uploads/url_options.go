package uploads

import "time"

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	downloadName string
	expiry       time.Duration
	forcePublic  bool
}

// DefaultURLExpiry is the signed URL lifetime when none is given.
const DefaultURLExpiry = 15 * time.Minute

// WithExpiry sets the signed URL lifetime.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithDownload forces a download with the given filename via
// Content-Disposition. Implies a signed URL.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) { o.downloadName = filename }
}

// WithPublic returns the unsigned public URL. The file must have been
// uploaded with ACLPublicRead or live in a public bucket.
func WithPublic() URLOption {
	return func(o *urlOptions) { o.forcePublic = true }
}
