package dnsverify_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/pkg/dnsverify"
)

type stubResolver struct {
	records map[string][]string
	err     error
}

func (s *stubResolver) LookupTXT(_ context.Context, name string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[name], nil
}

func TestVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("matching record verifies", func(t *testing.T) {
		t.Parallel()

		r := &stubResolver{records: map[string][]string{
			"forum.example.com": {
				"v=spf1 include:_spf.example.com ~all",
				"plaza-site-verification=01JF8QZ3W7",
			},
		}}
		require.NoError(t, dnsverify.Verify(ctx, "forum.example.com", "01JF8QZ3W7", dnsverify.WithResolver(r)))
	})

	t.Run("domain is normalized", func(t *testing.T) {
		t.Parallel()

		r := &stubResolver{records: map[string][]string{
			"forum.example.com": {"plaza-site-verification=tok"},
		}}
		require.NoError(t, dnsverify.Verify(ctx, "  Forum.Example.COM ", "tok", dnsverify.WithResolver(r)))
	})

	t.Run("token inside another record does not verify", func(t *testing.T) {
		t.Parallel()

		r := &stubResolver{records: map[string][]string{
			"forum.example.com": {"other-site-verification=01JF8QZ3W7"},
		}}
		err := dnsverify.Verify(ctx, "forum.example.com", "01JF8QZ3W7", dnsverify.WithResolver(r))
		require.ErrorIs(t, err, dnsverify.ErrDomainNotVerified)
	})

	t.Run("missing records", func(t *testing.T) {
		t.Parallel()

		r := &stubResolver{err: &net.DNSError{IsNotFound: true}}
		err := dnsverify.Verify(ctx, "forum.example.com", "tok", dnsverify.WithResolver(r))
		require.ErrorIs(t, err, dnsverify.ErrTXTRecordNotFound)
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()

		r := &stubResolver{err: errors.New("i/o timeout")}
		err := dnsverify.Verify(ctx, "forum.example.com", "tok", dnsverify.WithResolver(r))
		require.ErrorIs(t, err, dnsverify.ErrDNSLookupFailed)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, dnsverify.Verify(ctx, "", "tok"), dnsverify.ErrInvalidInput)
		require.ErrorIs(t, dnsverify.Verify(ctx, "example.com", "  "), dnsverify.ErrInvalidInput)
	})
}

func TestTokenRecord(t *testing.T) {
	t.Parallel()

	require.Equal(t, "plaza-site-verification=abc", dnsverify.TokenRecord("abc"))
}
