package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://esdc.skkmigas.go.id/"

// FetchError is surfaced unchanged to callers: a non-2xx response or a
// transport failure while downloading.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client downloads report payloads from the upstream API with basic auth.
// No retry or backoff: a failed download is reported and the caller decides.
type Client struct {
	BaseURL  string
	Username string
	Password string
	HTTP     *http.Client
}

func (c *Client) base() string {
	b := defaultBaseURL
	if c.BaseURL != "" {
		b = c.BaseURL
	}
	if !strings.HasSuffix(b, "/") {
		b += "/"
	}
	return b
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 5 * time.Minute}
}

// apiPaths maps loadable tables to their upstream endpoints.
var apiPaths = map[string]string{
	"project_resources":  "project-resources",
	"project_timeseries": "project-timeseries",
}

// Tables lists the tables with an upstream endpoint, sorted.
func Tables() []string {
	names := make([]string, 0, len(apiPaths))
	for t := range apiPaths {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

// BuildURL constructs the download URL for one table, e.g.
// https://esdc.skkmigas.go.id/api/v2/project-resources?verbose=3&output=csv
// reportYear 0 requests all years.
func (c *Client) BuildURL(table, filetype string, reportYear int) (string, error) {
	path, ok := apiPaths[table]
	if !ok {
		return "", fmt.Errorf("no upstream endpoint for table %q", table)
	}
	url := fmt.Sprintf("%sapi/v2/%s?verbose=3", c.base(), path)
	if reportYear > 0 {
		url = fmt.Sprintf("%s&report-year=%d", url, reportYear)
	}
	return fmt.Sprintf("%s&output=%s", url, filetype), nil
}

// Download fetches a URL and returns the payload bytes. Responses declaring
// Content-Encoding gzip are inflated here: the upstream server compresses
// unconditionally regardless of Accept-Encoding.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	log.Info().Str("url", url).Int("bytes", len(data)).Msg("download complete")
	return data, nil
}

// Fetch downloads one table in the requested file type.
func (c *Client) Fetch(ctx context.Context, table, filetype string, reportYear int) ([]byte, error) {
	url, err := c.BuildURL(table, filetype, reportYear)
	if err != nil {
		return nil, err
	}
	return c.Download(ctx, url)
}
