package runware

import (
	"net/http"

	"github.com/petal-labs/runware/core"
)

// DefaultBaseURL is the default Runware task endpoint.
const DefaultBaseURL = "https://api.runware.ai/v1"

// Doer sends an HTTP request. *http.Client satisfies it; tests and callers can
// substitute any transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds configuration for the Runware client.
type Config struct {
	// APIKey is the Runware API key. It is not validated locally.
	APIKey core.Secret

	// BaseURL is the task endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient performs requests. Defaults to http.DefaultClient.
	HTTPClient Doer

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Telemetry observes every round trip. Defaults to a no-op hook.
	Telemetry core.TelemetryHook
}

// Option configures the Runware client.
type Option func(*Config)

// WithBaseURL sets the task endpoint. An empty url keeps the default.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(client Doer) Option {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTelemetry sets the hook notified around each request.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.Telemetry = h
		}
	}
}
