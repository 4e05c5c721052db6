package mistral

import (
	"github.com/dentalbot/scribe/pkg/provider/openai"
)

type Transcriber = openai.Transcriber

func NewTranscriber(model string, options ...Option) (*Transcriber, error) {
	cfg := &Config{}

	for _, option := range options {
		option(cfg)
	}

	return openai.NewTranscriber(baseURL, model, cfg.options...)
}
