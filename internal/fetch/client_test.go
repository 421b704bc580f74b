package fetch

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	c := &Client{}
	url, err := c.BuildURL("project_resources", "csv", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://esdc.skkmigas.go.id/api/v2/project-resources?verbose=3&output=csv", url)

	url, err = c.BuildURL("project_timeseries", "json", 2023)
	require.NoError(t, err)
	assert.Equal(t, "https://esdc.skkmigas.go.id/api/v2/project-timeseries?verbose=3&report-year=2023&output=json", url)

	_, err = c.BuildURL("users", "csv", 0)
	assert.Error(t, err)
}

func TestBuildURL_BaseWithoutTrailingSlash(t *testing.T) {
	c := &Client{BaseURL: "https://example.test"}
	url, err := c.BuildURL("project_resources", "csv", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api/v2/project-resources?verbose=3&output=csv", url)
}

func TestTables(t *testing.T) {
	assert.Equal(t, []string{"project_resources", "project_timeseries"}, Tables())
}

func TestDownload_BasicAuth(t *testing.T) {
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := &Client{Username: "alice", Password: "secret"}
	data, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestDownload_GzipBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The upstream server gzips regardless of Accept-Encoding.
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("a;b\n1;2\n"))
		gz.Close()
	}))
	defer srv.Close()

	c := &Client{HTTP: &http.Client{Transport: &http.Transport{DisableCompression: true}}}
	data, err := c.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(data))
}

func TestDownload_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Download(context.Background(), srv.URL)
	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, http.StatusUnauthorized, ferr.StatusCode)
	assert.Equal(t, srv.URL, ferr.URL)
}

func TestFetch_UsesConfiguredBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/project-resources", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("verbose"))
		assert.Equal(t, "csv", r.URL.Query().Get("output"))
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/"}
	data, err := c.Fetch(context.Background(), "project_resources", "csv", 0)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}
