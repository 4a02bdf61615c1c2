package crawl_test

import (
	"log/slog"
	"testing"

	crawler "github.com/obeone/crawler-to-md"
	"github.com/obeone/crawler-to-md/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrontier(t *testing.T, base string, maxPages int, excludes ...string) *crawl.Frontier {
	t.Helper()
	return crawl.NewFrontier(crawler.NewScope(base, excludes), maxPages, slog.Default())
}

func TestFrontier_Enqueue_accepts_in_scope_URLs(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)

	assert.True(t, f.Enqueue("https://example.com/docs/intro", ""))
	assert.True(t, f.Enqueue("https://example.com/docs/guide/setup", "https://example.com/docs/intro"))
	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Enqueue_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)

	assert.True(t, f.Enqueue("https://example.com/docs/intro", ""))
	assert.False(t, f.Enqueue("https://example.com/docs/intro", ""))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Enqueue_deduplicates_canonical_variants(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)

	assert.True(t, f.Enqueue("https://example.com/docs/intro", ""))
	// Same page under fragment and trailing-slash variants.
	assert.False(t, f.Enqueue("https://example.com/docs/intro#section", ""))
	assert.False(t, f.Enqueue("https://example.com/docs/intro/", ""))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Enqueue_rejects_out_of_scope_URLs(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)

	assert.False(t, f.Enqueue("https://example.com/blog/post", ""))
	assert.False(t, f.Enqueue("https://other.example.com/docs/intro", ""))
	assert.False(t, f.Enqueue("not a url", ""))
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Enqueue_rejects_excluded_URLs(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10, "_print", "/v1/")

	assert.False(t, f.Enqueue("https://example.com/docs/page_print", ""))
	assert.False(t, f.Enqueue("https://example.com/docs/v1/intro", ""))
	assert.True(t, f.Enqueue("https://example.com/docs/v2/intro", ""))
}

func TestFrontier_Enqueue_stops_accepting_at_page_ceiling(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 2)

	assert.True(t, f.Enqueue("https://example.com/docs/a", ""))
	assert.True(t, f.Enqueue("https://example.com/docs/b", ""))
	assert.False(t, f.Enqueue("https://example.com/docs/c", ""))
	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Next_returns_URLs_in_FIFO_order_with_positions(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)
	require.True(t, f.Enqueue("https://example.com/docs/a", ""))
	require.True(t, f.Enqueue("https://example.com/docs/b", ""))
	require.True(t, f.Enqueue("https://example.com/docs/c", ""))

	u, pos, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs/a", u)
	assert.Equal(t, 0, pos)

	u, pos, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs/b", u)
	assert.Equal(t, 1, pos)

	u, pos, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs/c", u)
	assert.Equal(t, 2, pos)

	_, _, ok = f.Next()
	assert.False(t, ok)
}

func TestFrontier_Next_interleaves_with_Enqueue(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)
	require.True(t, f.Enqueue("https://example.com/docs/a", ""))

	u, pos, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs/a", u)
	assert.Equal(t, 0, pos)

	// Links discovered while processing the first page keep the next index.
	require.True(t, f.Enqueue("https://example.com/docs/b", u))
	u, pos, ok = f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs/b", u)
	assert.Equal(t, 1, pos)
}

func TestFrontier_Seen_reports_enqueued_URLs_even_after_Next(t *testing.T) {
	t.Parallel()

	f := newFrontier(t, "https://example.com/docs/", 10)
	require.True(t, f.Enqueue("https://example.com/docs/a", ""))

	_, _, ok := f.Next()
	require.True(t, ok)

	assert.True(t, f.Seen("https://example.com/docs/a"))
	assert.True(t, f.Seen("https://example.com/docs/a#top"))
	assert.False(t, f.Seen("https://example.com/docs/b"))
}
