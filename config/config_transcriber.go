package config

import (
	"errors"
	"strings"

	"github.com/dentalbot/scribe/pkg/limiter"
	"github.com/dentalbot/scribe/pkg/otel"
	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/mistral"
	"github.com/dentalbot/scribe/pkg/provider/openai"
	"github.com/dentalbot/scribe/pkg/provider/replicate"
	"github.com/dentalbot/scribe/pkg/provider/scribe"
	"github.com/dentalbot/scribe/pkg/provider/whisper"
)

func (cfg *Config) RegisterTranscriber(id string, p provider.Transcriber) {
	if cfg.transcriber == nil {
		cfg.transcriber = make(map[string]provider.Transcriber)
	}

	if _, ok := cfg.transcriber[""]; !ok {
		cfg.transcriber[""] = p
	}

	cfg.transcriber[id] = p
}

func (cfg *Config) Transcriber(id string) (provider.Transcriber, error) {
	if cfg.transcriber != nil {
		if t, ok := cfg.transcriber[id]; ok {
			return t, nil
		}
	}

	return nil, errors.New("transcriber not found: " + id)
}

func createTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var p provider.Transcriber
	var err error

	switch strings.ToLower(cfg.Type) {
	case "mistral":
		p, err = mistralTranscriber(cfg, model)

	case "openai", "openai-compatible":
		p, err = openaiTranscriber(cfg, model)

	case "replicate":
		p, err = replicateTranscriber(cfg, model)

	case "scribe":
		p, err = scribeTranscriber(cfg, model)

	case "whisper", "whisper-cpp":
		p, err = whisperTranscriber(cfg, model)

	default:
		return nil, errors.New("invalid transcriber type: " + cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	if model.Limiter != nil {
		p = limiter.NewTranscriber(model.Limiter, p)
	}

	if _, ok := p.(otel.Transcriber); !ok {
		p = otel.NewTranscriber(cfg.Type, model.ID, p)
	}

	return p, nil
}

func mistralTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var options []mistral.Option

	if cfg.Token != "" {
		options = append(options, mistral.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, mistral.WithClient(model.Client))
	}

	return mistral.NewTranscriber(model.ID, options...)
}

func openaiTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, openai.WithClient(model.Client))
	}

	return openai.NewTranscriber(cfg.URL, model.ID, options...)
}

func replicateTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var options []replicate.Option

	if cfg.URL != "" {
		options = append(options, replicate.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, replicate.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, replicate.WithClient(model.Client))
	}

	return replicate.NewTranscriber(model.ID, options...)
}

func scribeTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var options []scribe.Option

	if cfg.Token != "" {
		options = append(options, scribe.WithToken(cfg.Token))
	}

	// keeps the traced transport, model.Client would drop it
	if cfg.Timeout > 0 {
		options = append(options, scribe.WithTimeout(cfg.Timeout))
	}

	return scribe.NewTranscriber(cfg.URL, options...)
}

func whisperTranscriber(cfg providerConfig, model modelContext) (provider.Transcriber, error) {
	var options []whisper.Option

	if cfg.Binary != "" {
		options = append(options, whisper.WithBinary(cfg.Binary))
	}

	if cfg.Threads > 0 {
		options = append(options, whisper.WithThreads(cfg.Threads))
	}

	// the model id is the path to the ggml model file
	return whisper.NewTranscriber(model.ID, options...)
}
