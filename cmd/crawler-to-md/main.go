// Command crawler-to-md crawls a website and merges its pages into a single
// Markdown document plus a parallel JSON export.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	crawler "github.com/obeone/crawler-to-md"
	"github.com/obeone/crawler-to-md/crawl"
	"github.com/obeone/crawler-to-md/fs"
	"github.com/obeone/crawler-to-md/goquery"
	"github.com/obeone/crawler-to-md/htmltomarkdown"
	crawlerhttp "github.com/obeone/crawler-to-md/http"
	"github.com/obeone/crawler-to-md/readability"
	crawlerslog "github.com/obeone/crawler-to-md/slog"
	"github.com/obeone/crawler-to-md/sqlite"
	"github.com/obeone/crawler-to-md/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", crawler.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin supplies the URL list when --urls-file is "-".
	Stdin io.Reader

	// Sitemaps can be replaced in tests; defaults to the HTTP implementation.
	Sitemaps crawler.SitemapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:    os.Stdin,
		Sitemaps: crawlerhttp.NewSitemapService(nil),
	}
}

// Run executes the CLI with the given arguments. The returned error is nil
// only when the run produced a record for the seed page.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawler-to-md"),
		kong.Description("Crawl a website and merge its pages into one Markdown document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return nil
		}
	}

	logger := crawlerslog.NewLogger(stderr, crawlerslog.ParseLevel(os.Getenv(crawlerslog.LevelEnvVar)))

	var seedList []string
	if cli.URLsFile != "" {
		if seedList, err = readURLList(cli.URLsFile, m.Stdin); err != nil {
			return err
		}
	}

	job, err := cli.buildJob(seedList)
	if err != nil {
		return err
	}

	// Sitemap seeding turns the run into list mode when the site publishes
	// one; otherwise recursive discovery proceeds from the seed.
	if cli.Sitemap && job.Discover() {
		urls, err := m.Sitemaps.DiscoverURLs(ctx, job.BaseURL, job.Scope())
		if err != nil {
			logger.Warn("sitemap discovery failed", "err", crawler.ErrorMessage(err))
		} else if len(urls) > 0 {
			logger.Info("seeding from sitemap", "urls", len(urls))
			job.SeedList = crawler.DeduplicateURLs(append([]string{job.SeedURL}, urls...))
		}
	}

	var opts []crawlerhttp.Option
	if job.ProxyURL != "" {
		opts = append(opts, crawlerhttp.WithProxy(job.ProxyURL))
	}
	fetcher, err := crawlerhttp.NewFetcher(opts...)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	var extractor crawler.Extractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	if err := os.MkdirAll(cli.CacheFolder, 0o755); err != nil {
		return crawler.Errorf(crawler.ECACHE, "create cache directory %s: %v", cli.CacheFolder, err)
	}
	db := sqlite.NewDB(filepath.Join(cli.CacheFolder, crawler.URLToFilename(job.Seeds()[0])+".db"))
	if err := db.Open(); err != nil {
		return crawler.Errorf(crawler.ECACHE, "open cache database: %v", err)
	}
	store := crawlerslog.NewLoggingPageStore(sqlite.NewPageStore(db), logger)
	defer store.Close()

	engine := &crawl.Engine{
		Fetcher:     crawlerslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Links:       goquery.NewLinkExtractor(),
		Store:       store,
		Concurrency: cli.Concurrency,
		Logger:      logger,
	}

	result, err := engine.Run(ctx, job)
	if err != nil {
		return err
	}

	writer := fs.NewWriter(cli.OutputFolder)
	mdPath, err := writer.WriteMarkdown(job.BaseURL, job.Title, crawler.BuildDocument(job.Title, result.Records))
	if err != nil {
		return err
	}
	data, err := crawler.ExportJSON(result.Records)
	if err != nil {
		return err
	}
	jsonPath, err := writer.WriteJSON(job.BaseURL, job.Title, data)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, mdPath)
	fmt.Fprintln(stdout, jsonPath)

	if job.Individual {
		dir, err := writer.WriteIndividual(job.BaseURL, result.Records)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, dir)
	}

	fmt.Fprintf(stdout, "Crawled %d pages (%s, %d cached, %d failed)\n",
		len(result.Succeeded()), crawl.FormatBytes(result.Bytes), result.Cached, result.Failed)

	if seed := result.SeedRecord(); seed == nil || seed.Outcome.Failed() {
		return crawler.Errorf(crawler.EFETCH, "seed page %s could not be processed", job.Seeds()[0])
	}
	return nil
}
