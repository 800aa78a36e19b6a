package remote

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Remote during construction in New.
type Option func(*Remote) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(r *Remote) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		r.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the whole client, e.g. with httptest's.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Remote) error {
		if c == nil {
			return fmt.Errorf("http client must be non-nil")
		}
		r.http = c
		return nil
	}
}

// WithAPIKey wraps the transport so every request carries a bearer token.
func WithAPIKey(key string) Option {
	return func(r *Remote) error {
		if key == "" {
			return fmt.Errorf("api key must be non-empty")
		}
		base := r.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		r.http.Transport = &apiKeyTransport{base: base, apiKey: key}
		return nil
	}
}

// WithDebugLogging wraps the transport so each request/response is logged
// when enabled is true. Not for production; bodies may contain user data.
func WithDebugLogging(enabled bool) Option {
	return func(r *Remote) error {
		if enabled {
			base := r.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			r.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}

// apiKeyTransport wraps an http.RoundTripper to add the Authorization header.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}
