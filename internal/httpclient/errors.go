package httpclient

import "fmt"

// UpstreamError represents an error response returned by an upstream service
type UpstreamError struct {
	StatusCode  int
	ContentType string
	Body        []byte
	URL         string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
}
