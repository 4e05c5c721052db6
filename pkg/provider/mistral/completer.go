package mistral

import (
	"github.com/dentalbot/scribe/pkg/provider/openai"
)

type Completer = openai.Completer

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	return openai.NewCompleter(baseURL, model, cfg.options...)
}
