package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, cfg FetchConfig) *CollyFetcher {
	t.Helper()
	f, err := NewCollyFetcher(cfg, nil)
	require.NoError(t, err)
	return f
}

func TestCollyFetcherSuccess(t *testing.T) {
	t.Parallel()

	const body = `<html><head><title>ok</title></head></html>`
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := newTestFetcher(t, FetchConfig{})
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, page.StatusCode)
	require.Equal(t, body, string(page.Body))
	require.Equal(t, DefaultUserAgent, gotUA)
}

func TestCollyFetcherFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := newTestFetcher(t, FetchConfig{})
	page, err := f.Fetch(context.Background(), srv.URL+"/start")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/final", page.FinalURL)
	require.Equal(t, srv.URL+"/start", page.URL)
}

func TestCollyFetcherNon2xxIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := newTestFetcher(t, FetchConfig{})
	_, err := f.Fetch(context.Background(), srv.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestCollyFetcherTimeoutIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, FetchConfig{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestCollyFetcherInvalidURL(t *testing.T) {
	t.Parallel()

	f := newTestFetcher(t, FetchConfig{})
	_, err := f.Fetch(context.Background(), "not-a-url")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestResolverWithCollyFetcherEndToEnd(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
<meta property="og:title" content="Hello">
<meta name="description" content="World">
</head><body><img src="/pic.png"></body></html>`))
	}))
	defer srv.Close()

	f := newTestFetcher(t, FetchConfig{})
	r := NewResolver(f, nil)

	got, err := r.Resolve(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Title)
	require.Equal(t, "World", got.Description)
	require.Equal(t, srv.URL+"/pic.png", got.ImageURL)
}
