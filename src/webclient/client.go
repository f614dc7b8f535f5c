package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with sane timeouts. Every outbound call
// in the service goes through a client built here so that no upstream
// provider can stall a request indefinitely.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
