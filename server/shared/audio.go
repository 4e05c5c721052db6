package shared

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"
)

const AudioField = "audio_data"

var (
	ErrNoAudio       = errors.New("no audio file")
	ErrAudioTooLarge = errors.New("audio file too large")
)

// ReadAudio reads the uploaded recording from the audio_data multipart field.
// Bodies over limit bytes fail with ErrAudioTooLarge, a missing or empty
// upload with ErrNoAudio.
func ReadAudio(w http.ResponseWriter, r *http.Request, limit int64) (*provider.File, error) {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile(AudioField)

	if err != nil {
		if isTooLarge(err) {
			return nil, ErrAudioTooLarge
		}

		return nil, ErrNoAudio
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		if isTooLarge(err) {
			return nil, ErrAudioTooLarge
		}

		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrNoAudio
	}

	contentType := header.Header.Get("Content-Type")

	if mediatype, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediatype
	}

	name := header.Filename

	if name == "" {
		name = "audio.webm"
	}

	return &provider.File{
		Name: name,

		Content:     data,
		ContentType: contentType,
	}, nil
}

// WriteAudioError maps a ReadAudio failure to its response.
func WriteAudioError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAudioTooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, "Audio file too large")
		return
	}

	WriteError(w, http.StatusBadRequest, "No audio file")
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError

	if errors.As(err, &maxErr) {
		return true
	}

	// mime/multipart does not always wrap the underlying read error
	return strings.Contains(err.Error(), "request body too large")
}
