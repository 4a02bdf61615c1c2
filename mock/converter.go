package mock

import (
	crawler "github.com/obeone/crawler-to-md"
)

var _ crawler.Converter = (*Converter)(nil)

// Converter is a mock implementation of crawler.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
