package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every upstream call. On expiry the request fails, no
// retry is attempted.
const DefaultTimeout = 15 * time.Second

// Response is a fully-read upstream reply with a status the caller still has
// to interpret.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client issues plain GET requests against upstream target URLs.
type Client struct {
	http *http.Client
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get fetches url and reads the whole body. Statuses >= 400 are returned as
// an *UpstreamError carrying the status and body so callers can forward them;
// transport failures (timeout, DNS, connection refused) surface as the
// underlying error.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &UpstreamError{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        body,
			URL:         url,
		}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}
