package config

import (
	"cmp"
	"os"

	"github.com/dentalbot/scribe/pkg/limiter"
	"github.com/dentalbot/scribe/pkg/otel"
	"github.com/dentalbot/scribe/pkg/provider/google"
	"github.com/dentalbot/scribe/pkg/provider/scribe"
	"github.com/dentalbot/scribe/pkg/provider/whisper"
)

const (
	defaultCompleter   = "gemini-2.5-flash"
	defaultWhisper     = "whisper"
	defaultTranscriber = "scribe"
)

// Default builds the configuration used when no config file is given:
// Gemini for extraction, a local whisper.cpp model for /transcribe and the
// sibling transcription service for /process_audio.
func Default() (*Config, error) {
	cfg := &Config{
		Origins: splitList(os.Getenv("CORS_ORIGINS")),

		Transcribe: TranscribeConfig{
			Model:    defaultWhisper,
			Language: os.Getenv("WHISPER_LANGUAGE"),
		},

		Form: FormConfig{
			Model:       defaultCompleter,
			Transcriber: defaultTranscriber,
		},
	}

	model := cmp.Or(os.Getenv("GOOGLE_MODEL"), defaultCompleter)

	completer, err := google.NewCompleter(model,
		google.WithToken(os.Getenv("GOOGLE_API_KEY")),
	)

	if err != nil {
		return nil, err
	}

	cfg.RegisterCompleter(defaultCompleter, otel.NewCompleter("google", model, completer))

	local, err := whisper.NewTranscriber(
		cmp.Or(os.Getenv("WHISPER_MODEL"), "models/ggml-tiny.bin"),
		whisper.WithBinary(cmp.Or(os.Getenv("WHISPER_BIN"), "whisper-cli")),
	)

	if err != nil {
		return nil, err
	}

	// whisper.cpp is CPU bound, start at most one run per second
	cfg.RegisterTranscriber(defaultWhisper, otel.NewTranscriber("whisper", defaultWhisper, limiter.NewTranscriber(createLimiter(ptr(1)), local)))

	remote, err := scribe.NewTranscriber(cmp.Or(os.Getenv("SCRIBE_TRANSCRIBER_URL"), "http://localhost:10000"),
		scribe.WithTimeout(scribe.DefaultTimeout),
	)

	if err != nil {
		return nil, err
	}

	cfg.RegisterTranscriber(defaultTranscriber, otel.NewTranscriber("scribe", defaultTranscriber, remote))

	cfg.applyDefaults()

	return cfg, nil
}

func ptr[T any](v T) *T {
	return &v
}
