package crawler

import "context"

// SitemapService discovers crawlable URLs from a site's published sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs advertised by robots.txt or sitemap.xml for
	// the site of baseURL, filtered to the given scope. Returns an empty
	// slice (not nil) when the site publishes no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string, scope Scope) ([]string, error)
}
