package mock

import (
	"context"

	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of crawler.PageStore.
type PageStore struct {
	LookupFn func(ctx context.Context, canonicalURL string) (*crawler.PageRecord, error)
	StoreFn  func(ctx context.Context, record *crawler.PageRecord) error
	CloseFn  func() error
}

func (s *PageStore) Lookup(ctx context.Context, canonicalURL string) (*crawler.PageRecord, error) {
	return s.LookupFn(ctx, canonicalURL)
}

func (s *PageStore) Store(ctx context.Context, record *crawler.PageRecord) error {
	return s.StoreFn(ctx, record)
}

func (s *PageStore) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
