package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	crawler "github.com/obeone/crawler-to-md"
)

// Ensure SitemapService implements crawler.SitemapService.
var _ crawler.SitemapService = (*SitemapService)(nil)

// SitemapService discovers seedable URLs from a site's sitemaps. Sitemap
// locations come from robots.txt Sitemap directives, with /sitemap.xml as a
// fallback. Sitemap index files are followed recursively.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService using the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns canonical, in-scope URLs listed by the site's
// sitemaps, in sitemap order. It returns an empty slice (not nil) when no
// sitemap is found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, scope crawler.Scope) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, crawler.Errorf(crawler.ECONFIG, "invalid base URL %q", baseURL)
	}

	// Sitemaps live at the domain root regardless of the scope path.
	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs, err := s.locateSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	visited := make(map[string]bool)
	for _, sm := range sitemapURLs {
		found, err := s.collect(ctx, sm, visited)
		if err != nil {
			return nil, err
		}
		for _, raw := range found {
			canonical, err := crawler.Canonicalize(raw)
			if err != nil || !scope.Allows(canonical) {
				continue
			}
			urls = append(urls, canonical)
		}
	}
	return crawler.DeduplicateURLs(urls), nil
}

// locateSitemaps resolves the site's sitemap locations: robots.txt Sitemap
// directives first, then a /sitemap.xml probe.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	exists, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, crawler.Errorf(crawler.EFETCH, "read robots.txt: %v", err)
	}
	return sitemaps, nil
}

// collect fetches one sitemap and returns the page URLs it lists, following
// <sitemapindex> entries recursively. visited guards against sitemap cycles.
func (s *SitemapService) collect(ctx context.Context, sitemapURL string, visited map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if visited[sitemapURL] {
		return nil, nil
	}
	visited[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, crawler.Errorf(crawler.EFETCH, "parse sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, crawler.Errorf(crawler.EFETCH, "sitemap %s is empty", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, loc := range locations(root, "sitemap") {
			urls, err := s.collect(ctx, loc, visited)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}
	return locations(root, "url"), nil
}

// locations returns the non-empty <loc> values of the named child elements.
func locations(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, crawler.Errorf(crawler.EFETCH, "build request for %s: %v", targetURL, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, crawler.Errorf(crawler.EFETCH, "GET %s: %v", targetURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, crawler.Errorf(crawler.EFETCH, "GET %s: status %d", targetURL, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
