// Package goquery implements crawler.LinkExtractor using CSS selectors over
// a parsed HTML document.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crawler "github.com/obeone/crawler-to-md"
)

// Ensure LinkExtractor implements crawler.LinkExtractor at compile time.
var _ crawler.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects the anchor targets of an HTML page in document
// order. Scope filtering happens later, at frontier admission.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns every a[href] target resolved against
// pageURL. Fragments are dropped, non-navigational schemes are skipped, and
// duplicates keep their first occurrence.
func (l *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawler.Errorf(crawler.EINVALID, "parse HTML of %s: %v", pageURL, err)
	}

	links := []string{}
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || skipScheme(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		if resolved.Host == "" {
			return
		}

		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		links = append(links, u)
	})

	return links, nil
}

// skipScheme reports whether an href uses a scheme that never leads to a
// crawlable page.
func skipScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
