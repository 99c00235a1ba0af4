package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

func loadHTTP(ctx context.Context, client *http.Client, rawURL string, allowHTTP bool, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("schema loader: http client is not configured")
	}
	if rawURL == "" {
		return nil, errors.New("schema loader: url is required")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("schema loader: parse url: %w", err)
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !allowHTTP {
			return nil, fmt.Errorf("schema loader: plain http is disabled for %q", rawURL)
		}
	default:
		return nil, fmt.Errorf("schema loader: unsupported url scheme %q", parsed.Scheme)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("schema loader: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
