// Package dnsverify proves domain ownership through DNS TXT records.
//
// Before a custom domain joins the trusted-domain list, its owner
// publishes a TXT record carrying a verification token:
//
//	forum.example.com TXT "plaza-site-verification=01JF8QZ3W7"
//
// and the CLI confirms it:
//
//	err := dnsverify.Verify(ctx, "forum.example.com", "01JF8QZ3W7")
//
// # Errors
//
//   - ErrInvalidInput: domain or token is empty
//   - ErrTXTRecordNotFound: the domain has no TXT records
//   - ErrDNSLookupFailed: the lookup hit a network error
//   - ErrDomainNotVerified: records exist but none carries the token
package dnsverify
