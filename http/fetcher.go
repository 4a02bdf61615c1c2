// Package http provides the HTTP implementations of crawler.Fetcher and
// crawler.SitemapService.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	crawler "github.com/obeone/crawler-to-md"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler to origin servers.
const DefaultUserAgent = "crawler-to-md/1.0 (+https://github.com/obeone/crawler-to-md)"

// Ensure Fetcher implements crawler.Fetcher at compile time.
var _ crawler.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs over plain HTTP requests. It does
// not execute JavaScript and is suitable for static sites only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	proxyURL  string
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProxy routes all requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxyURL = proxyURL
	}
}

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if f.proxyURL != "" {
		proxy, err := url.Parse(f.proxyURL)
		if err != nil {
			return nil, crawler.Errorf(crawler.ECONFIG, "invalid proxy URL %q: %v", f.proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}
	return f, nil
}

// Fetch retrieves the HTML body of the given URL. It returns the HTTP status
// code when a response was received, or 0 when the request never completed.
// Non-2xx responses and non-HTML content types are EFETCH errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", crawler.Errorf(crawler.EFETCH, "build request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", crawler.Errorf(crawler.EFETCH, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, "", crawler.Errorf(crawler.EFETCH, "GET %s: status %d", rawURL, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil && !isHTML(mediaType) {
			return resp.StatusCode, "", crawler.Errorf(crawler.EFETCH, "GET %s: unsupported content type %q", rawURL, mediaType)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", crawler.Errorf(crawler.EFETCH, "read body of %s: %v", rawURL, err)
	}
	return resp.StatusCode, string(body), nil
}

func isHTML(mediaType string) bool {
	switch strings.ToLower(mediaType) {
	case "text/html", "application/xhtml+xml", "text/plain":
		return true
	}
	return false
}

// Close releases resources held by the underlying client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
