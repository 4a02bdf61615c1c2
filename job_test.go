package crawler_test

import (
	"testing"

	crawler "github.com/obeone/crawler-to-md"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() *crawler.CrawlJob {
	return &crawler.CrawlJob{
		SeedURL:  "https://example.com/docs/",
		BaseURL:  "https://example.com/docs/",
		Title:    "Example Docs",
		MaxPages: crawler.DefaultMaxPages,
	}
}

func TestCrawlJob_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid job passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validJob().Validate())
	})

	t.Run("requires a seed", func(t *testing.T) {
		t.Parallel()
		job := validJob()
		job.SeedURL = ""
		err := job.Validate()
		require.Error(t, err)
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
	})

	t.Run("URL list satisfies the seed requirement", func(t *testing.T) {
		t.Parallel()
		job := validJob()
		job.SeedURL = ""
		job.SeedList = []string{"https://example.com/docs/a"}
		require.NoError(t, job.Validate())
	})

	t.Run("rejects non-positive page limit", func(t *testing.T) {
		t.Parallel()
		job := validJob()
		job.MaxPages = 0
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(job.Validate()))
	})

	t.Run("rejects negative rate limit", func(t *testing.T) {
		t.Parallel()
		job := validJob()
		job.RateLimit = -1
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(job.Validate()))
	})

	t.Run("rejects negative delay", func(t *testing.T) {
		t.Parallel()
		job := validJob()
		job.Delay = -1
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(job.Validate()))
	})
}

func TestCrawlJob_Discover(t *testing.T) {
	t.Parallel()

	job := validJob()
	assert.True(t, job.Discover(), "seed-URL runs follow links")

	job.SeedList = []string{"https://example.com/docs/a"}
	assert.False(t, job.Discover(), "list runs fetch exactly the supplied URLs")
}

func TestScope_Allows(t *testing.T) {
	t.Parallel()

	scope := crawler.NewScope("https://example.com/docs/", []string{"_print"})

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "base itself", url: "https://example.com/docs", want: true},
		{name: "child path", url: "https://example.com/docs/intro", want: true},
		{name: "query on base", url: "https://example.com/docs?page=2", want: true},
		{name: "outside the prefix", url: "https://example.com/other", want: false},
		{name: "prefix match must stop at a boundary", url: "https://example.com/docs-old", want: false},
		{name: "different host", url: "https://other.example.com/docs/intro", want: false},
		{name: "excluded substring", url: "https://example.com/docs/page/_print", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, scope.Allows(tt.url))
		})
	}
}

func TestScope_EmptyBaseAllowsAnyHost(t *testing.T) {
	t.Parallel()

	scope := crawler.NewScope("", []string{"logout"})

	assert.True(t, scope.Allows("https://anything.example.org/page"))
	assert.False(t, scope.Allows("https://anything.example.org/logout"))
}
