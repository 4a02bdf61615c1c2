package slog

import (
	"context"
	"log/slog"
	"time"

	crawler "github.com/obeone/crawler-to-md"
)

// Ensure LoggingFetcher implements crawler.Fetcher.
var _ crawler.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   crawler.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a logging decorator around next.
func NewLoggingFetcher(next crawler.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging URL, status, size, and
// duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (int, string, error) {
	start := time.Now()
	status, body, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"duration", time.Since(start),
			"err", err.Error(),
		)
		return status, body, err
	}
	f.logger.Debug("fetch",
		"url", url,
		"status", status,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return status, body, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
