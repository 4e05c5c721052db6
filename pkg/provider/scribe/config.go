package scribe

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds a single call to the transcription service.
const DefaultTimeout = 300 * time.Second

type Config struct {
	url   string
	token string

	client *http.Client
}

type Option func(*Config)

// WithClient replaces the HTTP client. The client's own timeout applies.
func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.client = newClient(timeout)
	}
}

// newClient propagates the caller's trace context to the transcription service.
func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
