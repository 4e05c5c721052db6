package scribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Transcriber = (*Transcriber)(nil)

// Transcriber forwards audio to a running transcription service over HTTP.
type Transcriber struct {
	*Config
}

func NewTranscriber(url string, options ...Option) (*Transcriber, error) {
	if url == "" {
		return nil, errors.New("transcription service url is required")
	}

	cfg := &Config{
		url: endpoint(url),

		client: newClient(DefaultTimeout),
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

	name := input.Name

	if name == "" {
		name = "audio.webm"
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_data"; filename="%s"`, escapeQuotes(name)))

	contentType := input.ContentType

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header.Set("Content-Type", contentType)

	file, err := w.CreatePart(header)

	if err != nil {
		return nil, err
	}

	if _, err := file.Write(input.Content); err != nil {
		return nil, err
	}

	if options.Language != "" {
		if err := w.WriteField("language", options.Language); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.url, &data)

	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result struct {
		Text  string `json:"text"`
		Error string `json:"error"`
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(body, &result) == nil && result.Error != "" {
			return nil, fmt.Errorf("%s: %s", resp.Status, result.Error)
		}

		return nil, errors.New(resp.Status)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("invalid transcription response: %w", err)
	}

	return &provider.Transcription{
		ID: uuid.NewString(),

		Text: result.Text,
	}, nil
}

// endpoint accepts either the service base URL or the full /transcribe URL.
func endpoint(url string) string {
	url = strings.TrimRight(url, "/")

	if strings.HasSuffix(url, "/transcribe") {
		return url
	}

	return url + "/transcribe"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
