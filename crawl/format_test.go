package crawl_test

import (
	"strings"
	"testing"

	"github.com/obeone/crawler-to-md/crawl"
	"github.com/stretchr/testify/assert"
)

func TestContentHash_is_stable_and_content_sensitive(t *testing.T) {
	t.Parallel()

	a := crawl.ContentHash("# Hello")
	assert.Equal(t, a, crawl.ContentHash("# Hello"))
	assert.NotEqual(t, a, crawl.ContentHash("# Hello!"))
	assert.Len(t, a, 16)
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.io/x", crawl.TruncateURL("https://a.io/x", 40))
	assert.Equal(t, "", crawl.TruncateURL("https://a.io/x", 0))

	long := "https://example.com/docs/guide/advanced/setup"
	got := crawl.TruncateURL(long, 20)
	assert.Len(t, got, 20)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(long, got[3:]))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}
