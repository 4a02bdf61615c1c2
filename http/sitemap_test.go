package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	crawler "github.com/obeone/crawler-to-md"
	crawlerhttp "github.com/obeone/crawler-to-md/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlset(urls ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		s += "<url><loc>" + u + "</loc></url>"
	}
	return s + "</urlset>"
}

func TestSitemapService_DiscoverURLs_reads_sitemap_from_robots_txt(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nDisallow:\nSitemap: %s/custom-sitemap.xml\n", srv.URL)
	})
	mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/docs/a", srv.URL+"/docs/b"))
	})

	s := crawlerhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/docs/", crawler.NewScope(srv.URL+"/docs/", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/a", srv.URL + "/docs/b"}, urls)
}

func TestSitemapService_DiscoverURLs_falls_back_to_sitemap_xml(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/docs/a"))
	})

	s := crawlerhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL, crawler.NewScope(srv.URL, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/a"}, urls)
}

func TestSitemapService_DiscoverURLs_follows_sitemap_index(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex>
			<sitemap><loc>%s/sitemap-1.xml</loc></sitemap>
			<sitemap><loc>%s/sitemap-2.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/sitemap-1.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/a"))
	})
	mux.HandleFunc("/sitemap-2.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urlset(srv.URL+"/b", srv.URL+"/a"))
	})

	s := crawlerhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL, crawler.NewScope(srv.URL, nil))
	require.NoError(t, err)
	// Duplicates collapse, first occurrence wins.
	assert.Equal(t, []string{srv.URL + "/a", srv.URL + "/b"}, urls)
}

func TestSitemapService_DiscoverURLs_filters_by_scope(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urlset(
			srv.URL+"/docs/intro",
			srv.URL+"/blog/post",
			srv.URL+"/docs/page_print",
		))
	})

	s := crawlerhttp.NewSitemapService(nil)
	scope := crawler.NewScope(srv.URL+"/docs/", []string{"_print"})
	urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/docs/", scope)
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro"}, urls)
}

func TestSitemapService_DiscoverURLs_returns_empty_when_no_sitemap(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := crawlerhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL, crawler.NewScope(srv.URL, nil))
	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemapService_DiscoverURLs_rejects_invalid_base_URL(t *testing.T) {
	t.Parallel()

	s := crawlerhttp.NewSitemapService(nil)
	_, err := s.DiscoverURLs(context.Background(), "not a url", crawler.Scope{})
	require.Error(t, err)
	assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
}
