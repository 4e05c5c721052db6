package form

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"
)

// Extractor fills a schema from a transcript using a language model.
type Extractor struct {
	schema    Schema
	completer provider.Completer

	temperature *float32
	structured  bool
}

type Option func(*Extractor)

func WithTemperature(temperature float32) Option {
	return func(e *Extractor) {
		e.temperature = &temperature
	}
}

// WithStructuredOutput sends the schema to the model as a response schema.
func WithStructuredOutput(enabled bool) Option {
	return func(e *Extractor) {
		e.structured = enabled
	}
}

func NewExtractor(completer provider.Completer, schema Schema, options ...Option) *Extractor {
	e := &Extractor{
		schema:    schema,
		completer: completer,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Extractor) Schema() Schema {
	return e.schema
}

// Extract runs prompt, recovery and normalization for one transcript.
func (e *Extractor) Extract(ctx context.Context, transcript string) (*Result, error) {
	transcript = strings.TrimSpace(transcript)

	if transcript == "" {
		return nil, ErrMissingInput
	}

	prompt := Prompt(e.schema, transcript)

	options := &provider.CompleteOptions{
		Format:      provider.CompletionFormatJSON,
		Temperature: e.temperature,
	}

	if e.structured {
		options.Schema = &provider.Schema{
			Name:        "form",
			Description: "extracted form fields",

			Schema: e.schema.Map(),
		}
	}

	completion, err := e.completer.Complete(ctx, []provider.Message{
		provider.UserMessage(prompt),
	}, options)

	if err != nil {
		return nil, upstreamError("Extraction", err)
	}

	reply := completion.Text()

	slog.DebugContext(ctx, "model reply", "reply", reply)

	data, err := Recover(reply)

	if err != nil {
		return nil, err
	}

	return Normalize(e.schema, data), nil
}
