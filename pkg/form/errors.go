package form

import (
	"errors"
)

var (
	ErrMissingInput    = errors.New("missing input")
	ErrEmptyTranscript = errors.New("transcription returned empty text")
	ErrExtraction      = errors.New("failed to extract valid JSON from model response")
)

// UpstreamError is a failed call to a model or sibling service.
// Op names the stage as shown to clients, e.g. "Transcription".
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamError(op string, err error) error {
	return &UpstreamError{
		Op:  op,
		Err: err,
	}
}
