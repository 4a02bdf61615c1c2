// Package mock provides function-field mock implementations of the root
// package interfaces for use in tests.
package mock

import (
	"context"

	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crawler.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (int, string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (int, string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
