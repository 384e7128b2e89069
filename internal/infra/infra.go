// Package infra provides shared HTTP infrastructure used across the
// application: a pre-configured client and request helpers.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient is a pre-configured HTTP client with a bounded request timeout.
// A single slow upstream call cannot outlive this ceiling.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

// DoGet performs a GET request using hc (HTTPClient when nil), returning the
// response body and status code. The caller is responsible for closing the
// returned ReadCloser. Responses with status >= 400 are still returned so
// callers can inspect error envelopes carried in the payload.
func DoGet(ctx context.Context, hc *http.Client, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if hc == nil {
		hc = HTTPClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	return resp.Body, resp.StatusCode, nil
}

// ReadBody drains and closes a response body, limiting the read to maxBytes.
func ReadBody(body io.ReadCloser, maxBytes int64) ([]byte, error) {
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
