// Package htmltomarkdown implements crawler.Converter using the
// html-to-markdown library.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	crawler "github.com/obeone/crawler-to-md"
)

// Ensure Converter implements crawler.Converter at compile time.
var _ crawler.Converter = (*Converter)(nil)

// Converter turns extracted HTML into Markdown. It keeps ATX headings, code
// fences, and tables, which the assembly step relies on.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", crawler.Errorf(crawler.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", crawler.Errorf(crawler.EINTERNAL, "convert HTML: %v", err)
	}
	return result, nil
}
