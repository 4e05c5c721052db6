package whisper

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Transcriber = (*Transcriber)(nil)

// Transcriber runs a local whisper.cpp model. Each upload is staged as a
// temporary file that is removed once the CLI returns.
type Transcriber struct {
	*Config
}

func NewTranscriber(model string, options ...Option) (*Transcriber, error) {
	cfg := &Config{
		bin:   "whisper-cli",
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Transcriber{
		Config: cfg,
	}, nil
}

func (t *Transcriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	if options == nil {
		options = new(provider.TranscribeOptions)
	}

	ext := filepath.Ext(input.Name)

	if ext == "" {
		ext = ".webm"
	}

	f, err := os.CreateTemp("", "audio-*"+ext)

	if err != nil {
		return nil, fmt.Errorf("error creating temporary file: %w", err)
	}

	defer os.Remove(f.Name())

	if _, err := f.Write(input.Content); err != nil {
		f.Close()
		return nil, fmt.Errorf("error saving audio file: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("error saving audio file: %w", err)
	}

	args := []string{
		"-m", t.model,
		"-f", f.Name(),
		"--no-prints",
		"--no-timestamps",
	}

	if options.Language != "" {
		args = append(args, "-l", options.Language)
	}

	if t.threads > 0 {
		args = append(args, "-t", strconv.Itoa(t.threads))
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, t.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("error running whisper: %w: %s", err, msg)
		}

		return nil, fmt.Errorf("error running whisper: %w", err)
	}

	return &provider.Transcription{
		ID:    uuid.NewString(),
		Model: filepath.Base(t.model),

		Text: joinLines(stdout.String()),
	}, nil
}

// joinLines flattens the CLI output, one segment per line, into a single line.
func joinLines(s string) string {
	var parts []string

	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}
