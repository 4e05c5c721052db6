package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dentalbot/scribe/pkg/form"
)

type FormService struct {
	Options []RequestOption
}

func NewFormService(opts ...RequestOption) FormService {
	return FormService{
		Options: opts,
	}
}

type Form = form.Result
type Submission = form.Submission
type Schema = form.Schema

type AudioRequest struct {
	Name   string
	Reader io.Reader
}

// Fill extracts the form fields from a transcript.
func (r *FormService) Fill(ctx context.Context, text string, opts ...RequestOption) (*Form, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	body, _ := json.Marshal(map[string]string{
		"text": text,
	})

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/fill_form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	result := new(Form)

	if err := c.do(req, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ProcessAudio transcribes a recording and extracts the form fields from it.
func (r *FormService) ProcessAudio(ctx context.Context, input AudioRequest, opts ...RequestOption) (*Submission, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	name := input.Name

	if name == "" {
		name = "audio.webm"
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	file, err := w.CreateFormFile("audio_data", name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(file, input.Reader); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, "POST", c.URL+"/process_audio", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())

	result := new(Submission)

	if err := c.do(req, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *FormService) Schema(ctx context.Context, opts ...RequestOption) (Schema, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, "GET", c.URL+"/schema", nil)

	var result Schema

	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return result, nil
}
