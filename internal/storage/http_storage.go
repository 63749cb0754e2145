package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-oembed-provider/pkg/models"
)

// HTTPMetadataFetcher resolves content metadata from a JSON backend endpoint
type HTTPMetadataFetcher struct {
	backendURL string
	client     *http.Client
}

// NewHTTPMetadataFetcher creates a fetcher for the given backend base URL
func NewHTTPMetadataFetcher(backendURL string, timeout time.Duration) MetadataFetcher {
	transport := &http.Transport{
		// Connection pooling sized for small metadata lookups
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPMetadataFetcher{
		backendURL: backendURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			// Prevent redirects to avoid unexpected behavior
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchMetadata calls the backend with the content URL and optional size
// hints. 5xx responses are retried up to 3 attempts with linear backoff; 4xx
// responses are not retried, and 404 maps to ErrMetadataNotFound.
func (h *HTTPMetadataFetcher) FetchMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error) {
	query := url.Values{}
	query.Set("url", contentURL)
	if maxWidth > 0 {
		query.Set("maxwidth", strconv.Itoa(maxWidth))
	}
	if maxHeight > 0 {
		query.Set("maxheight", strconv.Itoa(maxHeight))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Go-Oembed-Provider/1.0")

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			defer resp.Body.Close()
			return decodeMetadata(resp.Body)
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, ErrMetadataNotFound
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			// Client errors are non-retryable
			resp.Body.Close()
			return nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
		default:
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("failed to fetch metadata after 3 attempts: %w", lastErr)
}

func decodeMetadata(r io.Reader) (*models.ContentMetadata, error) {
	var meta models.ContentMetadata
	if err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &meta, nil
}
