package client

import (
	"context"
	"io"

	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/scribe"
)

type TranscriptionService struct {
	Options []RequestOption
}

func NewTranscriptionService(opts ...RequestOption) TranscriptionService {
	return TranscriptionService{
		Options: opts,
	}
}

type Transcription = provider.Transcription
type TranscribeOptions = provider.TranscribeOptions

type TranscribeRequest struct {
	TranscribeOptions

	Name   string
	Reader io.Reader
}

func (r *TranscriptionService) New(ctx context.Context, input TranscribeRequest, opts ...RequestOption) (*Transcription, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)

	options := []scribe.Option{}

	if cfg.Token != "" {
		options = append(options, scribe.WithToken(cfg.Token))
	}

	if cfg.Client != nil {
		options = append(options, scribe.WithClient(cfg.Client))
	}

	p, err := scribe.NewTranscriber(cfg.URL, options...)

	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Reader)

	if err != nil {
		return nil, err
	}

	file := provider.File{
		Name:    input.Name,
		Content: data,
	}

	return p.Transcribe(ctx, file, &input.TranscribeOptions)
}
