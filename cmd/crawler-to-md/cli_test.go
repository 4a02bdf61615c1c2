package main

import (
	"strings"
	"testing"
	"time"

	crawler "github.com/obeone/crawler-to-md"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_buildJob_defaults(t *testing.T) {
	t.Parallel()

	cli := &CLI{URL: "https://example.com/docs/intro", Limit: 500}

	job, err := cli.buildJob(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/docs/intro", job.SeedURL)
	assert.Equal(t, "https://example.com/docs/", job.BaseURL)
	assert.Equal(t, "https://example.com/docs/intro", job.Title)
	assert.Equal(t, 500, job.MaxPages)
	assert.True(t, job.Discover())
}

func TestCLI_buildJob_keeps_directory_seeds_scoped_to_themselves(t *testing.T) {
	t.Parallel()

	cli := &CLI{URL: "https://example.com/docs/", Limit: 500}

	job, err := cli.buildJob(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/", job.BaseURL)
}

func TestCLI_buildJob_converts_delay_seconds(t *testing.T) {
	t.Parallel()

	cli := &CLI{URL: "https://example.com/docs", Limit: 500, Delay: 1.5}

	job, err := cli.buildJob(nil)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, job.Delay)
}

func TestCLI_buildJob_uses_the_first_list_URL_for_defaults(t *testing.T) {
	t.Parallel()

	cli := &CLI{Limit: 500}
	list := []string{"https://example.com/docs/a", "https://example.com/docs/b"}

	job, err := cli.buildJob(list)
	require.NoError(t, err)

	assert.Equal(t, list, job.SeedList)
	assert.Equal(t, "https://example.com/docs/", job.BaseURL)
	assert.Equal(t, "https://example.com/docs/a", job.Title)
	assert.False(t, job.Discover())
}

func TestCLI_buildJob_rejects_missing_and_invalid_URLs(t *testing.T) {
	t.Parallel()

	_, err := (&CLI{Limit: 500}).buildJob(nil)
	require.Error(t, err)
	assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))

	_, err = (&CLI{URL: "ftp://example.com/x", Limit: 500}).buildJob(nil)
	require.Error(t, err)
	assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
}

func TestReadURLList(t *testing.T) {
	t.Parallel()

	t.Run("skips blanks and comments, deduplicates", func(t *testing.T) {
		t.Parallel()

		in := strings.NewReader("https://a.io/x\n\n# note\nhttps://a.io/y\nhttps://a.io/x\n")
		urls, err := readURLList("-", in)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.io/x", "https://a.io/y"}, urls)
	})

	t.Run("rejects an empty list", func(t *testing.T) {
		t.Parallel()

		_, err := readURLList("-", strings.NewReader("\n# only comments\n"))
		require.Error(t, err)
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := readURLList("/does/not/exist.txt", nil)
		require.Error(t, err)
		assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
	})
}
