package mock

import (
	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crawler.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*crawler.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*crawler.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
