package slog

import (
	"context"
	"log/slog"

	crawler "github.com/obeone/crawler-to-md"
)

// Ensure LoggingPageStore implements crawler.PageStore.
var _ crawler.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with cache hit/miss logging.
type LoggingPageStore struct {
	next   crawler.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a logging decorator around next.
func NewLoggingPageStore(next crawler.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Lookup delegates to the wrapped store, logging hits and misses.
func (s *LoggingPageStore) Lookup(ctx context.Context, canonicalURL string) (*crawler.PageRecord, error) {
	rec, err := s.next.Lookup(ctx, canonicalURL)
	switch {
	case err == nil:
		s.logger.Debug("cache hit", "url", canonicalURL)
	case crawler.ErrorCode(err) == crawler.ENOTFOUND:
		s.logger.Debug("cache miss", "url", canonicalURL)
	default:
		s.logger.Error("cache lookup failed", "url", canonicalURL, "err", err.Error())
	}
	return rec, err
}

// Store delegates to the wrapped store.
func (s *LoggingPageStore) Store(ctx context.Context, record *crawler.PageRecord) error {
	if err := s.next.Store(ctx, record); err != nil {
		s.logger.Error("cache store failed", "url", record.URL, "err", err.Error())
		return err
	}
	s.logger.Debug("cached", "url", record.URL, "outcome", string(record.Outcome))
	return nil
}

// Close delegates to the wrapped store.
func (s *LoggingPageStore) Close() error {
	return s.next.Close()
}
