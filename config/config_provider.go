package config

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type ModelType string

const (
	ModelTypeCompleter   ModelType = "completer"
	ModelTypeTranscriber ModelType = "transcriber"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Region  string `yaml:"region"`
	Binary  string `yaml:"binary"`
	Threads int    `yaml:"threads"`

	Timeout time.Duration `yaml:"timeout"`

	Limit *int `yaml:"limit"`

	Models yaml.Node `yaml:"models"`
}

type modelConfig struct {
	ID   string    `yaml:"id"`
	Type ModelType `yaml:"type"`

	Limit *int `yaml:"limit"`
}

type modelContext struct {
	ID   string
	Type ModelType

	Client  *http.Client
	Limiter *rate.Limiter
}

func (cfg *Config) registerProviders(f *configFile) error {
	for _, p := range f.Providers {
		if p.Models.Kind == 0 {
			return errors.New("provider has no models: " + p.Type)
		}

		var models map[string]modelConfig

		if err := p.Models.Decode(&models); err != nil {
			return err
		}

		for _, node := range p.Models.Content {
			id := node.Value

			m, ok := models[id]

			if !ok {
				continue
			}

			context := modelContext{
				ID:   id,
				Type: m.Type,

				Limiter: createLimiter(p.Limit),
			}

			if m.ID != "" {
				context.ID = m.ID
			}

			if m.Limit != nil {
				context.Limiter = createLimiter(m.Limit)
			}

			if context.Type == "" {
				context.Type = DetectModelType(context.ID)
			}

			if p.Timeout > 0 {
				context.Client = &http.Client{
					Timeout: p.Timeout,
				}
			}

			switch context.Type {
			case ModelTypeCompleter:
				completer, err := createCompleter(p, context)

				if err != nil {
					return err
				}

				cfg.RegisterCompleter(id, completer)

			case ModelTypeTranscriber:
				transcriber, err := createTranscriber(p, context)

				if err != nil {
					return err
				}

				cfg.RegisterTranscriber(id, transcriber)

			default:
				return errors.New("invalid model type: " + string(context.Type))
			}
		}
	}

	return nil
}

// DetectModelType guesses the model type from well-known model names.
func DetectModelType(id string) ModelType {
	id = strings.ToLower(id)

	for _, s := range []string{"whisper", "transcribe", "voxtral", "ggml-", "scribe"} {
		if strings.Contains(id, s) {
			return ModelTypeTranscriber
		}
	}

	return ModelTypeCompleter
}
