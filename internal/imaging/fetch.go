package imaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the body of a remote URL. It is the only collaborator
// the ingestion layer blocks on; timeout and retry policy belong to the
// implementation and its caller, never to ingestion itself.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcherConfig carries the explicit settings for an HTTPFetcher.
// Configuration is passed in by the caller; the fetcher reads no
// environment state of its own.
type HTTPFetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// HTTPFetcher is the default Fetcher backed by net/http. A zero timeout
// means no client-side timeout.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher builds a fetcher from explicit configuration.
func NewHTTPFetcher(cfg HTTPFetcherConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Fetch performs a single blocking GET. Non-2xx statuses and empty bodies
// are reported as errors; there is no retry.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("get %s: empty response body", url)
	}
	return body, nil
}
