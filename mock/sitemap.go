package mock

import (
	"context"

	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of crawler.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, scope crawler.Scope) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, scope crawler.Scope) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, scope)
}
