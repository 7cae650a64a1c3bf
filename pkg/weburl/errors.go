package weburl

import "errors"

var (
	ErrInvalidSiteURL  = errors.New("weburl: invalid site URL")
	ErrEmptyHost       = errors.New("weburl: site URL must include a host")
	ErrInvalidPattern  = errors.New("weburl: invalid trusted domain pattern")
	ErrUnsafeScheme    = errors.New("weburl: site URL scheme must be http or https")
	ErrInvalidRedirect = errors.New("weburl: redirect status must be 3xx")
)
