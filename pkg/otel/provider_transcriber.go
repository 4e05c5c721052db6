package otel

import (
	"context"
	"time"

	"github.com/dentalbot/scribe/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Transcriber interface {
	Observable
	provider.Transcriber
}

type observableTranscriber struct {
	model    string
	provider string

	transcriber provider.Transcriber

	durationMetric metric.Float64Histogram
}

func NewTranscriber(provider, model string, p provider.Transcriber) Transcriber {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("scribe.transcription.duration",
		metric.WithDescription("Duration of speech-to-text calls"),
		metric.WithUnit("s"),
	)

	return &observableTranscriber{
		transcriber: p,

		model:    model,
		provider: provider,

		durationMetric: durationMetric,
	}
}

func (p *observableTranscriber) otelSetup() {
}

func (p *observableTranscriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "transcribe "+p.model)
	defer span.End()

	span.SetAttributes(
		String("transcriber.provider", p.provider),
		Int("transcriber.input.bytes", len(input.Content)),
	)

	timestamp := time.Now()

	result, err := p.transcriber.Transcribe(ctx, input, options)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if p.durationMetric != nil {
		p.durationMetric.Record(ctx, time.Since(timestamp).Seconds(), metric.WithAttributes(
			String("transcriber.provider", p.provider),
			String("transcriber.model", p.model),
		))
	}

	return result, nil
}
