package config

import (
	"errors"
	"strings"

	"github.com/dentalbot/scribe/pkg/limiter"
	"github.com/dentalbot/scribe/pkg/otel"
	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/anthropic"
	"github.com/dentalbot/scribe/pkg/provider/bedrock"
	"github.com/dentalbot/scribe/pkg/provider/google"
	"github.com/dentalbot/scribe/pkg/provider/mistral"
	"github.com/dentalbot/scribe/pkg/provider/openai"
)

func (cfg *Config) RegisterCompleter(id string, p provider.Completer) {
	if cfg.completer == nil {
		cfg.completer = make(map[string]provider.Completer)
	}

	if _, ok := cfg.completer[""]; !ok {
		cfg.completer[""] = p
	}

	cfg.completer[id] = p
}

func (cfg *Config) Completer(id string) (provider.Completer, error) {
	if cfg.completer != nil {
		if c, ok := cfg.completer[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("completer not found: " + id)
}

func createCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var p provider.Completer
	var err error

	switch strings.ToLower(cfg.Type) {
	case "anthropic":
		p, err = anthropicCompleter(cfg, model)

	case "bedrock":
		p, err = bedrockCompleter(cfg, model)

	case "google", "gemini":
		p, err = googleCompleter(cfg, model)

	case "mistral":
		p, err = mistralCompleter(cfg, model)

	case "openai", "openai-compatible":
		p, err = openaiCompleter(cfg, model)

	default:
		return nil, errors.New("invalid completer type: " + cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	if model.Limiter != nil {
		p = limiter.NewCompleter(model.Limiter, p)
	}

	if _, ok := p.(otel.Completer); !ok {
		p = otel.NewCompleter(cfg.Type, model.ID, p)
	}

	return p, nil
}

func anthropicCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []anthropic.Option

	if cfg.Token != "" {
		options = append(options, anthropic.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, anthropic.WithClient(model.Client))
	}

	return anthropic.NewCompleter(cfg.URL, model.ID, options...)
}

func bedrockCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []bedrock.Option

	if cfg.Region != "" {
		options = append(options, bedrock.WithRegion(cfg.Region))
	}

	if model.Client != nil {
		options = append(options, bedrock.WithClient(model.Client))
	}

	return bedrock.NewCompleter(model.ID, options...)
}

func googleCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []google.Option

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, google.WithClient(model.Client))
	}

	return google.NewCompleter(model.ID, options...)
}

func mistralCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []mistral.Option

	if cfg.Token != "" {
		options = append(options, mistral.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, mistral.WithClient(model.Client))
	}

	return mistral.NewCompleter(model.ID, options...)
}

func openaiCompleter(cfg providerConfig, model modelContext) (provider.Completer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	if model.Client != nil {
		options = append(options, openai.WithClient(model.Client))
	}

	return openai.NewCompleter(cfg.URL, model.ID, options...)
}
