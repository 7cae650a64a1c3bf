package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultTimeout bounds one outbound request, redirects included.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize caps captured response bodies at 10 MiB.
	DefaultMaxBodySize = 10 << 20

	// DefaultUserAgent identifies outbound requests.
	DefaultUserAgent = "Plaza/1.0"
)

// Client fetches remote resources on behalf of the platform: link
// previews, remote avatars, legacy endpoints. It is immutable after
// creation and safe for concurrent use.
//
// Redirects are not followed unless asked for, and a non-2xx status is
// not an error: callers get the response and decide.
type Client struct {
	hc           *http.Client
	transport    http.RoundTripper
	userAgent    string
	timeout      time.Duration
	maxBodySize  int64
	maxRedirects int
}

// Option configures a Client during construction.
type Option func(*Client)

// WithTimeout bounds each request including redirects. Contexts with
// an earlier deadline still win. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxRedirects sets the default redirect cap for every request.
// Zero, the default, surfaces the first 30x response unfollowed.
func WithMaxRedirects(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}

// WithMaxBodySize caps how many response bytes Fetch will buffer.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithUserAgent replaces the outbound User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTransport replaces the underlying round tripper. Tests use this
// to point at stub servers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.hc = &http.Client{
		Timeout:   c.timeout,
		Transport: c.transport,
	}

	return c
}

// Response is a captured upstream response.
type Response struct {
	Header     http.Header
	Status     string
	URL        string // final URL after any followed redirects
	Body       []byte
	StatusCode int
	Redirects  int // redirect hops followed
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type requestConfig struct {
	header       http.Header
	cookies      []*http.Cookie
	maxRedirects int
}

// RequestOption adjusts a single Fetch or Head call.
type RequestOption func(*requestConfig)

// WithFollowRedirects follows up to n redirect hops for this request,
// overriding the client default. Chains past the cap fail with
// ErrTooManyRedirects; an https target redirecting to plain http fails
// with ErrInsecureRedirect.
func WithFollowRedirects(n int) RequestOption {
	return func(cfg *requestConfig) {
		if n >= 0 {
			cfg.maxRedirects = n
		}
	}
}

// WithCookies forwards cookies upstream. Nothing is forwarded unless
// asked: sending a visitor's platform cookies to a third party must be
// a deliberate choice.
func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(cfg *requestConfig) {
		cfg.cookies = append(cfg.cookies, cookies...)
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(cfg *requestConfig) {
		if cfg.header == nil {
			cfg.header = make(http.Header)
		}
		cfg.header.Add(key, value)
	}
}

// Fetch retrieves rawURL with GET and buffers the body up to the size
// cap. Any status code is a successful fetch; the error return is for
// transport failures, redirect policy violations, and oversized
// bodies.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error) {
	cfg := c.newRequestConfig(opts)

	req, err := c.newRequest(ctx, http.MethodGet, rawURL, cfg)
	if err != nil {
		return nil, err
	}

	resp, redirects, err := c.do(req, cfg)
	if err != nil {
		return nil, fmt.Errorf("proxy: fetch: %w", err)
	}
	defer resp.Body.Close()

	limited := &io.LimitedReader{R: resp.Body, N: c.maxBodySize + 1}
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("proxy: read body: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, ErrBodyTooLarge
	}

	return &Response{
		Header:     resp.Header,
		Status:     resp.Status,
		URL:        resp.Request.URL.String(),
		Body:       body,
		StatusCode: resp.StatusCode,
		Redirects:  redirects,
	}, nil
}

// Head retrieves rawURL's headers and status. Origins that reject the
// HEAD method get one GET retry with the body discarded.
func (c *Client) Head(ctx context.Context, rawURL string, opts ...RequestOption) (http.Header, int, error) {
	cfg := c.newRequestConfig(opts)

	req, err := c.newRequest(ctx, http.MethodHead, rawURL, cfg)
	if err != nil {
		return nil, 0, err
	}

	resp, _, err := c.do(req, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("proxy: head: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed && resp.StatusCode != http.StatusNotImplemented {
		return resp.Header, resp.StatusCode, nil
	}

	req, err = c.newRequest(ctx, http.MethodGet, rawURL, cfg)
	if err != nil {
		return nil, 0, err
	}
	resp, _, err = c.do(req, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("proxy: head fallback: %w", err)
	}
	resp.Body.Close()

	return resp.Header, resp.StatusCode, nil
}

func (c *Client) newRequestConfig(opts []RequestOption) *requestConfig {
	cfg := &requestConfig{maxRedirects: c.maxRedirects}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, cfg *requestConfig) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("proxy: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("proxy: build request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range cfg.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	for _, cookie := range cfg.cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

// do runs the request under a per-call redirect policy. The http
// client is copied shallowly so concurrent requests with different
// policies share one transport.
func (c *Client) do(req *http.Request, cfg *requestConfig) (*http.Response, int, error) {
	hc := *c.hc

	var redirects int
	hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if cfg.maxRedirects <= 0 {
			return http.ErrUseLastResponse
		}
		if via[len(via)-1].URL.Scheme == "https" && req.URL.Scheme == "http" {
			return ErrInsecureRedirect
		}
		if len(via) > cfg.maxRedirects {
			return ErrTooManyRedirects
		}
		redirects = len(via)
		return nil
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, redirects, nil
}
