package uploads

import "strconv"

// Option configures a Put.
type Option func(*putOptions)

type putOptions struct {
	key         string
	prefix      string
	owner       int64
	contentType string
	acl         ACL
	rules       []ValidationRule
}

// WithKey sets an explicit storage key instead of the generated
// {prefix}/{owner}/{ulid}.{ext} one. Use it to overwrite a known file.
func WithKey(key string) Option {
	return func(o *putOptions) { o.key = key }
}

// WithPrefix groups the upload under a path segment, e.g. "avatars" or
// "attachments".
func WithPrefix(prefix string) Option {
	return func(o *putOptions) { o.prefix = prefix }
}

// WithOwner nests the upload under the owning user's id so a user's
// files can be listed and purged together.
func WithOwner(userID int64) Option {
	return func(o *putOptions) { o.owner = userID }
}

// WithContentType overrides magic-byte detection. Prefer detection.
func WithContentType(ct string) Option {
	return func(o *putOptions) { o.contentType = ct }
}

// WithACL overrides the default ACL for this upload.
func WithACL(acl ACL) Option {
	return func(o *putOptions) { o.acl = acl }
}

// WithValidation runs the rules before upload; a failing rule aborts
// with *FileValidationError.
func WithValidation(rules ...ValidationRule) Option {
	return func(o *putOptions) { o.rules = append(o.rules, rules...) }
}

func (o *putOptions) ownerSegment() string {
	if o.owner <= 0 {
		return ""
	}
	return strconv.FormatInt(o.owner, 10)
}
