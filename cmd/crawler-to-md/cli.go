package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	crawler "github.com/obeone/crawler-to-md"
)

// CLI defines the command-line flags for Kong.
type CLI struct {
	URL      string `short:"u" help:"Seed URL to start crawling from."`
	URLsFile string `name:"urls-file" help:"File with newline-delimited URLs to fetch ('-' reads stdin). Disables link discovery."`

	OutputFolder string `short:"o" name:"output-folder" default:"output" help:"Directory crawl artifacts are written to."`
	CacheFolder  string `short:"c" name:"cache-folder" default:"cache" help:"Directory cache databases are kept in."`

	BaseURL string   `short:"b" name:"base-url" help:"Scope prefix for discovered links. Defaults to the seed URL's directory."`
	Title   string   `short:"t" help:"Title of the merged document. Defaults to the seed URL."`
	Exclude []string `short:"e" help:"Skip URLs containing this substring (repeatable)."`

	RateLimit int     `name:"rate-limit" default:"0" help:"Maximum requests per minute (0 = unlimited)."`
	Delay     float64 `help:"Fixed pause in seconds after every request."`
	Proxy     string  `help:"Proxy URL for outbound requests."`

	ExportIndividual bool   `name:"export-individual" help:"Also write one Markdown file per page."`
	Limit            int    `default:"500" help:"Maximum number of pages to crawl."`
	Concurrency      int    `default:"1" help:"Concurrent fetch limit."`
	Sitemap          bool   `help:"Seed the crawl from the site's sitemap when one exists."`
	Extractor        string `default:"trafilatura" enum:"trafilatura,readability" help:"Content extraction strategy."`
}

// buildJob turns parsed flags into a validated CrawlJob. seedList is the
// parsed --urls-file content, nil in discovery mode.
func (c *CLI) buildJob(seedList []string) (*crawler.CrawlJob, error) {
	seed := c.URL
	if len(seedList) > 0 {
		seed = seedList[0]
	}
	if seed == "" {
		return nil, crawler.Errorf(crawler.ECONFIG, "no URL provided: set --url or --urls-file")
	}

	canonical, err := crawler.Canonicalize(seed)
	if err != nil {
		return nil, crawler.Errorf(crawler.ECONFIG, "invalid URL %q: %v", seed, err)
	}

	// Derive the scope from the raw seed so a trailing slash keeps its
	// directory meaning: /docs/ scopes to /docs/, /docs/intro to /docs/.
	baseURL := c.BaseURL
	if baseURL == "" {
		if baseURL, err = crawler.URLDirname(seed); err != nil {
			return nil, crawler.Errorf(crawler.ECONFIG, "cannot derive base URL from %q: %v", seed, err)
		}
	}

	title := c.Title
	if title == "" {
		title = seed
	}

	job := &crawler.CrawlJob{
		SeedURL:    canonical,
		SeedList:   seedList,
		BaseURL:    baseURL,
		Excludes:   c.Exclude,
		Title:      title,
		MaxPages:   c.Limit,
		RateLimit:  c.RateLimit,
		Delay:      time.Duration(c.Delay * float64(time.Second)),
		ProxyURL:   c.Proxy,
		Individual: c.ExportIndividual,
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// readURLList reads newline-delimited URLs from a file, or from stdin when
// path is "-". Blank lines and #-comments are skipped; duplicates collapse
// preserving first occurrence.
func readURLList(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, crawler.Errorf(crawler.ECONFIG, "open URL list %q: %v", path, err)
		}
		defer f.Close()
		r = f
	}

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, crawler.Errorf(crawler.ECONFIG, "read URL list %q: %v", path, err)
	}
	if len(urls) == 0 {
		return nil, crawler.Errorf(crawler.ECONFIG, "URL list %q is empty", path)
	}
	return crawler.DeduplicateURLs(urls), nil
}
