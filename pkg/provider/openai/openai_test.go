package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/openai"

	"github.com/stretchr/testify/require"
)

func TestTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)

		require.Equal(t, "recording.webm", header.Filename)
		require.Equal(t, []byte("audio"), data)
		require.Equal(t, "whisper-1", r.FormValue("model"))
		require.Equal(t, "en", r.FormValue("language"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "the patient is forty two years old"}`))
	}))

	defer server.Close()

	p, err := openai.NewTranscriber(server.URL+"/v1", "whisper-1", openai.WithToken("test-token"))
	require.NoError(t, err)

	result, err := p.Transcribe(context.Background(), provider.File{
		Name:        "recording.webm",
		Content:     []byte("audio"),
		ContentType: "audio/webm",
	}, &provider.TranscribeOptions{
		Language: "en",
	})

	require.NoError(t, err)
	require.Equal(t, "the patient is forty two years old", result.Text)
	require.Equal(t, "whisper-1", result.Model)
	require.NotEmpty(t, result.ID)
}

func TestComplete(t *testing.T) {
	var request map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4.1-mini",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"a\": \"1\"}"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
		}`))
	}))

	defer server.Close()

	p, err := openai.NewCompleter(server.URL+"/v1", "gpt-4.1-mini")
	require.NoError(t, err)

	temperature := float32(0)

	completion, err := p.Complete(context.Background(), []provider.Message{
		provider.UserMessage("extract"),
	}, &provider.CompleteOptions{
		Format:      provider.CompletionFormatJSON,
		Temperature: &temperature,
	})

	require.NoError(t, err)
	require.Equal(t, "chatcmpl-1", completion.ID)
	require.Equal(t, `{"a": "1"}`, completion.Text())
	require.Equal(t, 10, completion.Usage.InputTokens)
	require.Equal(t, 4, completion.Usage.OutputTokens)

	format, ok := request["response_format"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "json_object", format["type"])
	require.Equal(t, "gpt-4.1-mini", request["model"])
}

func TestCompleteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))

	defer server.Close()

	p, err := openai.NewCompleter(server.URL+"/v1", "gpt-4.1-mini")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), []provider.Message{
		provider.UserMessage("extract"),
	}, nil)

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}
