package form_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/stretchr/testify/require"
)

type mockTranscriber struct {
	text string
	err  error

	calls int
}

func (m *mockTranscriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	return &provider.Transcription{
		Text: m.text,
	}, nil
}

var testAudio = provider.File{
	Name:        "visit.webm",
	Content:     []byte("audio"),
	ContentType: "audio/webm",
}

func TestProcess(t *testing.T) {
	transcriber := &mockTranscriber{text: "  Patient Jane Doe, 42 years old.\n"}
	completer := &mockCompleter{reply: "```json\n{\"patient_name\": \"Jane Doe\", \"patient_age\": 42}\n```"}

	p := form.NewPipeline(transcriber, form.NewExtractor(completer, testSchema), "en")

	submission, err := p.Process(context.Background(), testAudio)
	require.NoError(t, err)

	data, err := json.Marshal(submission)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"transcribed_text": "Patient Jane Doe, 42 years old.",
		"extracted_data": {"patient_name": "Jane Doe", "patient_age": "42", "clinical_pain": ""}
	}`, string(data))
}

func TestProcessTranscriptionFailure(t *testing.T) {
	transcriber := &mockTranscriber{err: errors.New("connection refused")}
	completer := &mockCompleter{}

	p := form.NewPipeline(transcriber, form.NewExtractor(completer, testSchema), "")

	_, err := p.Process(context.Background(), testAudio)

	var upstream *form.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, "Transcription", upstream.Op)
	require.EqualError(t, err, "Transcription failed: connection refused")

	require.Zero(t, completer.calls)
}

func TestProcessEmptyTranscript(t *testing.T) {
	transcriber := &mockTranscriber{text: " \n\t "}
	completer := &mockCompleter{}

	p := form.NewPipeline(transcriber, form.NewExtractor(completer, testSchema), "")

	_, err := p.Process(context.Background(), testAudio)

	require.ErrorIs(t, err, form.ErrEmptyTranscript)
	require.Zero(t, completer.calls)
}

func TestProcessExtractionFailure(t *testing.T) {
	transcriber := &mockTranscriber{text: "hello"}
	completer := &mockCompleter{reply: "I could not find any fields."}

	p := form.NewPipeline(transcriber, form.NewExtractor(completer, testSchema), "")

	_, err := p.Process(context.Background(), testAudio)

	require.ErrorIs(t, err, form.ErrExtraction)
}

func TestProcessNoAudio(t *testing.T) {
	transcriber := &mockTranscriber{}

	p := form.NewPipeline(transcriber, form.NewExtractor(&mockCompleter{}, testSchema), "")

	_, err := p.Process(context.Background(), provider.File{})

	require.ErrorIs(t, err, form.ErrMissingInput)
	require.Zero(t, transcriber.calls)
}
