package mock

import (
	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of crawler.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, pageURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	return l.ExtractLinksFn(html, pageURL)
}
