package openai

import (
	"bytes"
	"context"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Transcriber = (*Transcriber)(nil)

type Transcriber struct {
	*Config
	transcriptions openai.AudioTranscriptionService
}

func NewTranscriber(url, model string, options ...Option) (*Transcriber, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Transcriber{
		Config:         cfg,
		transcriptions: openai.NewAudioTranscriptionService(cfg.Options()...),
	}, nil
}

func (t *Transcriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	if options == nil {
		options = new(provider.TranscribeOptions)
	}

	name := input.Name

	if name == "" {
		name = "audio.webm"
	}

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(t.model),

		File: openai.File(bytes.NewReader(input.Content), name, input.ContentType),

		ResponseFormat: openai.AudioResponseFormatJSON,
	}

	if options.Language != "" {
		params.Language = openai.String(options.Language)
	}

	transcription, err := t.transcriptions.New(ctx, params)

	if err != nil {
		return nil, convertError(err)
	}

	return &provider.Transcription{
		ID:    uuid.NewString(),
		Model: t.model,

		Text: transcription.Text,
	}, nil
}
