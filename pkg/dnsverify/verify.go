package dnsverify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrDNSLookupFailed   = errors.New("dnsverify: dns lookup failed")
	ErrDomainNotVerified = errors.New("dnsverify: domain not verified")
	ErrTXTRecordNotFound = errors.New("dnsverify: txt record not found")
	ErrInvalidInput      = errors.New("dnsverify: invalid domain or token")
)

// recordPrefix namespaces our TXT records so unrelated records on the
// same domain never match.
const recordPrefix = "plaza-site-verification="

// Resolver is the lookup surface Verify needs. *net.Resolver satisfies
// it.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

type config struct {
	resolver Resolver
}

// Option configures a verification call.
type Option func(*config)

// WithResolver overrides the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// TokenRecord returns the TXT record value a site owner must publish
// for the given token.
func TokenRecord(token string) string {
	return recordPrefix + token
}

// Verify checks that domain publishes a TXT record proving ownership of
// the verification token. The domain is lowercased and trimmed before
// lookup.
func Verify(ctx context.Context, domain, token string, opts ...Option) error {
	if strings.TrimSpace(domain) == "" || strings.TrimSpace(token) == "" {
		return ErrInvalidInput
	}

	cfg := &config{resolver: &net.Resolver{}}
	for _, opt := range opts {
		opt(cfg)
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	want := TokenRecord(strings.TrimSpace(token))

	records, err := cfg.resolver.LookupTXT(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return ErrTXTRecordNotFound
		}
		return fmt.Errorf("%w: %v", ErrDNSLookupFailed, err)
	}

	for _, record := range records {
		if strings.TrimSpace(record) == want {
			return nil
		}
	}

	return ErrDomainNotVerified
}
