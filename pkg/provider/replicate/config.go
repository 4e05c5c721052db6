package replicate

import (
	"net/http"

	"github.com/replicate/replicate-go"
)

type Config struct {
	url string

	token string
	model string

	client *http.Client
}

type Option func(*Config)

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

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func (c *Config) Options() []replicate.ClientOption {
	var options []replicate.ClientOption

	if c.url != "" {
		options = append(options, replicate.WithBaseURL(c.url))
	}

	if c.client != nil {
		options = append(options, replicate.WithHTTPClient(c.client))
	}

	if c.token != "" {
		options = append(options, replicate.WithToken(c.token))
	} else {
		options = append(options, replicate.WithTokenFromEnv())
	}

	return options
}
