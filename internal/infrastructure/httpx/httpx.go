package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cryptocompare-client/internal/domain"
)

// DefaultMaxBodyBytes caps a single response. The full coin list is a few MB.
const DefaultMaxBodyBytes = 64 << 20

var errBodyTooLarge = errors.New("response body exceeds limit")

// Client issues a single GET per call. It never retries.
type Client struct {
	HTTP         *http.Client
	MaxBodyBytes int64 // 0 means DefaultMaxBodyBytes
}

// Get fetches url and returns the body of a 2xx response. Every failure to obtain
// such a body is a *domain.NetworkError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &domain.NetworkError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > limit {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("%w (%d bytes)", errBodyTooLarge, limit)}
	}
	return body, nil
}
