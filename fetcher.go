package crawler

import "context"

// Fetcher retrieves raw HTML from URLs over HTTP.
type Fetcher interface {
	// Fetch retrieves the body of url. It returns the HTTP status code when
	// a response was received (0 for transport-level failures) and an EFETCH
	// error for any non-2xx status, non-HTML content type, or network error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (status int, body string, err error)

	// Close releases client resources.
	Close() error
}
