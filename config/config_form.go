package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dentalbot/scribe/pkg/form"
)

// Extractor builds the form extractor from the configured completer and schema.
func (cfg *Config) Extractor() (*form.Extractor, error) {
	completer, err := cfg.Completer(cfg.Form.Model)

	if err != nil {
		return nil, err
	}

	var options []form.Option

	if cfg.Form.Temperature != nil {
		options = append(options, form.WithTemperature(*cfg.Form.Temperature))
	}

	if cfg.Form.Structured {
		options = append(options, form.WithStructuredOutput(true))
	}

	return form.NewExtractor(completer, cfg.Form.Schema, options...), nil
}

// Pipeline builds the audio to form pipeline behind /process_audio.
func (cfg *Config) Pipeline() (*form.Pipeline, error) {
	extractor, err := cfg.Extractor()

	if err != nil {
		return nil, err
	}

	transcriber, err := cfg.Transcriber(cfg.Form.Transcriber)

	if err != nil {
		return nil, err
	}

	return form.NewPipeline(transcriber, extractor, cfg.Transcribe.Language), nil
}

func validateSchema(schema form.Schema) error {
	seen := make(map[string]bool, len(schema))

	for i, f := range schema {
		name := strings.TrimSpace(f.Name)

		if name == "" {
			return fmt.Errorf("form field %d has no name", i+1)
		}

		if name != f.Name {
			return errors.New("form field name has surrounding whitespace: " + f.Name)
		}

		if seen[name] {
			return errors.New("duplicate form field: " + name)
		}

		seen[name] = true
	}

	return nil
}
