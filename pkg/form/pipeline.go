package form

import (
	"context"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"
)

// Submission is the outcome of processing one recording.
type Submission struct {
	Transcript string  `json:"transcribed_text"`
	Data       *Result `json:"extracted_data"`
}

// Pipeline transcribes a recording and fills the schema from the transcript.
type Pipeline struct {
	transcriber provider.Transcriber
	extractor   *Extractor

	language string
}

func NewPipeline(transcriber provider.Transcriber, extractor *Extractor, language string) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		extractor:   extractor,

		language: language,
	}
}

func (p *Pipeline) Extractor() *Extractor {
	return p.extractor
}

// Process stops at the first failing stage and never returns partial results.
func (p *Pipeline) Process(ctx context.Context, audio provider.File) (*Submission, error) {
	if len(audio.Content) == 0 {
		return nil, ErrMissingInput
	}

	transcription, err := p.transcriber.Transcribe(ctx, audio, &provider.TranscribeOptions{
		Language: p.language,
	})

	if err != nil {
		return nil, upstreamError("Transcription", err)
	}

	text := strings.TrimSpace(transcription.Text)

	if text == "" {
		return nil, ErrEmptyTranscript
	}

	result, err := p.extractor.Extract(ctx, text)

	if err != nil {
		return nil, err
	}

	return &Submission{
		Transcript: text,
		Data:       result,
	}, nil
}
