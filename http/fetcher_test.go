package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	crawler "github.com/obeone/crawler-to-md"
	crawlerhttp "github.com/obeone/crawler-to-md/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_returns_body_and_status(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Hello</h1></body></html>"))
	}))
	defer srv.Close()

	f, err := crawlerhttp.NewFetcher()
	require.NoError(t, err)
	defer f.Close()

	status, body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "<h1>Hello</h1>")
}

func TestFetcher_Fetch_sends_identifying_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f, err := crawlerhttp.NewFetcher(crawlerhttp.WithUserAgent("custom-agent/2.0"))
	require.NoError(t, err)
	defer f.Close()

	_, _, err = f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/2.0", gotUA)
}

func TestFetcher_Fetch_reports_HTTP_errors_with_status(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f, err := crawlerhttp.NewFetcher()
	require.NoError(t, err)
	defer f.Close()

	status, _, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 404, status)
	assert.Equal(t, crawler.EFETCH, crawler.ErrorCode(err))
}

func TestFetcher_Fetch_reports_network_errors_with_zero_status(t *testing.T) {
	t.Parallel()

	f, err := crawlerhttp.NewFetcher(crawlerhttp.WithTimeout(time.Second))
	require.NoError(t, err)
	defer f.Close()

	// Reserved TEST-NET-1 address, nothing listens there.
	status, _, err := f.Fetch(context.Background(), "http://192.0.2.1:9/page")
	require.Error(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, crawler.EFETCH, crawler.ErrorCode(err))
}

func TestFetcher_Fetch_rejects_non_HTML_content(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	f, err := crawlerhttp.NewFetcher()
	require.NoError(t, err)
	defer f.Close()

	_, _, err = f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, crawler.ErrorMessage(err), "unsupported content type")
}

func TestFetcher_Fetch_honors_context_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f, err := crawlerhttp.NewFetcher()
	require.NoError(t, err)
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	status, _, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, 0, status)
}

func TestNewFetcher_rejects_malformed_proxy_URL(t *testing.T) {
	t.Parallel()

	_, err := crawlerhttp.NewFetcher(crawlerhttp.WithProxy("http://bad proxy url:%zz"))
	require.Error(t, err)
	assert.Equal(t, crawler.ECONFIG, crawler.ErrorCode(err))
}

func TestFetcher_Fetch_routes_requests_through_proxy(t *testing.T) {
	t.Parallel()

	// The proxy answers every absolute-URI request itself.
	proxied := 0
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>via proxy</html>"))
	}))
	defer proxy.Close()

	f, err := crawlerhttp.NewFetcher(crawlerhttp.WithProxy(proxy.URL))
	require.NoError(t, err)
	defer f.Close()

	_, body, err := f.Fetch(context.Background(), "http://upstream.invalid/page")
	require.NoError(t, err)
	assert.Contains(t, body, "via proxy")
	assert.Equal(t, 1, proxied)
}
