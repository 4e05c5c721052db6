package mistral

import (
	"net/http"

	"github.com/dentalbot/scribe/pkg/provider/openai"
)

const baseURL = "https://api.mistral.ai/v1/"

type Config struct {
	options []openai.Option
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.options = append(c.options, openai.WithClient(client))
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.options = append(c.options, openai.WithToken(token))
	}
}
