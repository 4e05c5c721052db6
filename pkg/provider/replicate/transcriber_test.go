package replicate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputText(t *testing.T) {
	tests := []struct {
		name     string
		output   PredictionOutput
		expected string
	}{
		{
			name:     "plain string",
			output:   "hello",
			expected: "hello",
		},
		{
			name: "whisper transcription",
			output: map[string]any{
				"transcription":     " the patient is ten ",
				"detected_language": "english",
			},
			expected: " the patient is ten ",
		},
		{
			name: "segments only",
			output: map[string]any{
				"segments": []any{
					map[string]any{"text": " first "},
					map[string]any{"text": "second"},
				},
			},
			expected: "first second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := outputText(tt.output)

			require.NoError(t, err)
			require.Equal(t, tt.expected, text)
		})
	}

	_, err := outputText([]any{1, 2})
	require.Error(t, err)
}
