package replicate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Transcriber = (*Transcriber)(nil)

// Transcriber runs a whisper model hosted on Replicate. The audio is uploaded
// as a Replicate file for the prediction and removed afterwards.
type Transcriber struct {
	*Client
}

func NewTranscriber(model string, options ...Option) (*Transcriber, error) {
	client, err := New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Transcriber{
		Client: client,
	}, nil
}

func (t *Transcriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	if options == nil {
		options = new(provider.TranscribeOptions)
	}

	file, err := t.UploadFile(ctx, input)

	if err != nil {
		return nil, err
	}

	defer func() {
		if err := t.DeleteFile(context.WithoutCancel(ctx), file.ID); err != nil {
			slog.WarnContext(ctx, "failed to delete replicate file", "file", file.ID, "error", err)
		}
	}()

	url, ok := file.URLs["get"]

	if !ok {
		return nil, errors.New("uploaded file has no url")
	}

	prediction := PredictionInput{
		"audio":         url,
		"transcription": "plain text",
	}

	if options.Language != "" {
		prediction["language"] = options.Language
	}

	output, err := t.Run(ctx, prediction)

	if err != nil {
		return nil, err
	}

	text, err := outputText(output)

	if err != nil {
		return nil, err
	}

	return &provider.Transcription{
		ID:    uuid.NewString(),
		Model: t.model,

		Text: text,
	}, nil
}

func outputText(output PredictionOutput) (string, error) {
	switch v := output.(type) {
	case string:
		return v, nil

	case map[string]any:
		for _, key := range []string{"transcription", "text"} {
			if text, ok := v[key].(string); ok {
				return text, nil
			}
		}

		if segments, ok := v["segments"].([]any); ok {
			var parts []string

			for _, s := range segments {
				if segment, ok := s.(map[string]any); ok {
					if text, ok := segment["text"].(string); ok {
						parts = append(parts, strings.TrimSpace(text))
					}
				}
			}

			return strings.Join(parts, " "), nil
		}
	}

	return "", fmt.Errorf("unexpected prediction output: %T", output)
}
