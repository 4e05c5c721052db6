package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/dentalbot/scribe/pkg/limiter"
	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingTranscriber struct {
	calls int
}

func (c *countingTranscriber) Transcribe(ctx context.Context, input provider.File, options *provider.TranscribeOptions) (*provider.Transcription, error) {
	c.calls++
	return &provider.Transcription{Text: "ok"}, nil
}

func TestTranscriberWaits(t *testing.T) {
	p := &countingTranscriber{}
	l := limiter.NewTranscriber(rate.NewLimiter(rate.Limit(1), 1), p)

	_, err := l.Transcribe(context.Background(), provider.File{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// the single token is spent, the next call cannot be served before the deadline
	_, err = l.Transcribe(ctx, provider.File{}, nil)
	require.Error(t, err)

	require.Equal(t, 1, p.calls)
}

func TestTranscriberWithoutLimit(t *testing.T) {
	p := &countingTranscriber{}
	l := limiter.NewTranscriber(nil, p)

	for range 5 {
		_, err := l.Transcribe(context.Background(), provider.File{}, nil)
		require.NoError(t, err)
	}

	require.Equal(t, 5, p.calls)
}
