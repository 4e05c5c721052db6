package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Client struct {
	Transcriptions TranscriptionService
	Forms          FormService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Transcriptions: NewTranscriptionService(opts...),
		Forms:          NewFormService(opts...),
	}
}

// Error is a non-2xx answer from a scribe service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) do(req *http.Request, result any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}

		data, _ := io.ReadAll(resp.Body)
		json.Unmarshal(data, &body)

		return &Error{
			StatusCode: resp.StatusCode,
			Message:    body.Error,
		}
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
