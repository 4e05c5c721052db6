package form_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/scribe"
	handler "github.com/dentalbot/scribe/server/form"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var testSchema = form.Schema{
	{Name: "patient_name", Description: "The patient's full name."},
	{Name: "patient_age", Description: "The patient's age in years."},
	{Name: "clinical_pain", Description: "Where the patient reports pain."},
}

type mockCompleter struct {
	reply string
	err   error

	calls int
}

func (m *mockCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	m.calls++

	if m.err != nil {
		return nil, m.err
	}

	message := provider.AssistantMessage(m.reply)

	return &provider.Completion{
		Message: &message,
	}, nil
}

// newSibling starts a fake transcription service answering with the given status and body.
func newSibling(t *testing.T, status int, body string) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))

	t.Cleanup(server.Close)

	return server.URL
}

func newServer(t *testing.T, completer provider.Completer, siblingURL string) *httptest.Server {
	t.Helper()

	transcriber, err := scribe.NewTranscriber(siblingURL)
	require.NoError(t, err)

	cfg := &config.Config{
		UploadLimit: 1 << 20,

		Form: config.FormConfig{
			Schema: testSchema,
		},
	}

	cfg.RegisterCompleter("test", completer)
	cfg.RegisterTranscriber("scribe", transcriber)

	h, err := handler.New(cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Attach(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(data)
}

func postAudio(t *testing.T, url string, field string) *http.Response {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile(field, "visit.webm")
	require.NoError(t, err)

	part.Write([]byte("audio"))
	require.NoError(t, w.Close())

	resp, err := http.Post(url+"/process_audio", w.FormDataContentType(), &body)
	require.NoError(t, err)

	return resp
}

func TestFillForm(t *testing.T) {
	completer := &mockCompleter{reply: "```json\n{\"patient_name\": \"Jane Doe\", \"patient_age\": 42, \"extra_field\": \"x\"}\n```"}
	server := newServer(t, completer, "http://localhost:0")

	resp, err := http.Post(server.URL+"/fill_form", "application/json", strings.NewReader(`{"text": "Jane Doe, forty two"}`))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `{"patient_name":"Jane Doe","patient_age":"42","clinical_pain":""}`+"\n", readBody(t, resp))
	require.Equal(t, 1, completer.calls)
}

func TestFillFormFormField(t *testing.T) {
	completer := &mockCompleter{reply: `{"patient_name": "John Smith"}`}
	server := newServer(t, completer, "http://localhost:0")

	resp, err := http.PostForm(server.URL+"/fill_form", url.Values{"text": {"John Smith"}})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"patient_name": "John Smith", "patient_age": "", "clinical_pain": ""}`, readBody(t, resp))
}

func TestFillFormMissingText(t *testing.T) {
	completer := &mockCompleter{reply: `{}`}
	server := newServer(t, completer, "http://localhost:0")

	for _, body := range []string{`{}`, `{"text": ""}`, `{"text": "   "}`, `{"other": "x"}`, `not json`} {
		resp, err := http.Post(server.URL+"/fill_form", "application/json", strings.NewReader(body))
		require.NoError(t, err)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		require.JSONEq(t, `{"error": "Missing 'text' in request body"}`, readBody(t, resp))
	}

	require.Zero(t, completer.calls)
}

func TestFillFormExtractionFailed(t *testing.T) {
	completer := &mockCompleter{err: errors.New("quota exceeded")}
	server := newServer(t, completer, "http://localhost:0")

	resp, err := http.Post(server.URL+"/fill_form", "application/json", strings.NewReader(`{"text": "hello"}`))
	require.NoError(t, err)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error": "Extraction failed: quota exceeded"}`, readBody(t, resp))
}

func TestFillFormInvalidReply(t *testing.T) {
	completer := &mockCompleter{reply: "Sorry, I cannot help with that."}
	server := newServer(t, completer, "http://localhost:0")

	resp, err := http.Post(server.URL+"/fill_form", "application/json", strings.NewReader(`{"text": "hello"}`))
	require.NoError(t, err)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error": "Failed to extract valid JSON from model response"}`, readBody(t, resp))
}

func TestProcessAudio(t *testing.T) {
	sibling := newSibling(t, http.StatusOK, `{"text": " Jane Doe, 42, pain in the upper left molar. "}`)
	completer := &mockCompleter{reply: `{"patient_name": "Jane Doe", "patient_age": "42", "clinical_pain": "upper left molar"}`}
	server := newServer(t, completer, sibling)

	resp := postAudio(t, server.URL, "audio_data")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{
		"transcribed_text": "Jane Doe, 42, pain in the upper left molar.",
		"extracted_data": {"patient_name": "Jane Doe", "patient_age": "42", "clinical_pain": "upper left molar"}
	}`, readBody(t, resp))
}

func TestProcessAudioMissingFile(t *testing.T) {
	completer := &mockCompleter{}
	server := newServer(t, completer, "http://localhost:0")

	resp := postAudio(t, server.URL, "file")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error": "No audio file"}`, readBody(t, resp))
	require.Zero(t, completer.calls)
}

func TestProcessAudioUnreachable(t *testing.T) {
	sibling := httptest.NewServer(http.NotFoundHandler())
	siblingURL := sibling.URL
	sibling.Close()

	completer := &mockCompleter{}
	server := newServer(t, completer, siblingURL)

	resp := postAudio(t, server.URL, "audio_data")

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, readBody(t, resp), `"error":"Transcription failed: `)
	require.Zero(t, completer.calls)
}

func TestProcessAudioSiblingError(t *testing.T) {
	sibling := newSibling(t, http.StatusInternalServerError, `{"error": "model crashed"}`)
	completer := &mockCompleter{}
	server := newServer(t, completer, sibling)

	resp := postAudio(t, server.URL, "audio_data")

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error": "Transcription failed: 500 Internal Server Error: model crashed"}`, readBody(t, resp))
	require.Zero(t, completer.calls)
}

func TestProcessAudioEmptyTranscript(t *testing.T) {
	sibling := newSibling(t, http.StatusOK, `{"text": "   "}`)
	completer := &mockCompleter{}
	server := newServer(t, completer, sibling)

	resp := postAudio(t, server.URL, "audio_data")

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error": "Transcription returned empty text"}`, readBody(t, resp))
	require.Zero(t, completer.calls)
}

func TestOptions(t *testing.T) {
	server := newServer(t, &mockCompleter{}, "http://localhost:0")

	for _, path := range []string{"/fill_form", "/process_audio"} {
		req, err := http.NewRequest(http.MethodOptions, server.URL+path, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		require.Equal(t, http.StatusNoContent, resp.StatusCode, path)
		require.Empty(t, readBody(t, resp))
	}
}

func TestSchema(t *testing.T) {
	server := newServer(t, &mockCompleter{}, "http://localhost:0")

	resp, err := http.Get(server.URL + "/schema")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `[
		{"name": "patient_name", "description": "The patient's full name."},
		{"name": "patient_age", "description": "The patient's age in years."},
		{"name": "clinical_pain", "description": "Where the patient reports pain."}
	]`, readBody(t, resp))
}
