// Package httputil provides HTTP client utilities with standard configurations.
package httputil

import (
	"net/http"
	"time"
)

const (
	// Default timeout for HTTP requests
	defaultTimeout = 10 * time.Second

	// Transport configuration constants
	maxIdleConns        = 32
	maxIdleConnsPerHost = 16
	idleConnTimeout     = 90 * time.Second

	// UserAgent is sent on every outbound request.
	UserAgent = "mainstream/1.0 (+https://github.com/amaumene/mainstream)"
)

// userAgentTransport sets a fixed User-Agent unless the request already has one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", UserAgent)
	return t.base.RoundTrip(clone)
}

// NewHTTPClient creates a new HTTP client with the specified timeout.
// A zero or negative timeout falls back to the default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{base: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		}},
	}
}

// NewDefaultHTTPClient creates a new HTTP client with the default timeout.
func NewDefaultHTTPClient() *http.Client {
	return NewHTTPClient(defaultTimeout)
}
