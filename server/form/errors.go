package form

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/server/shared"
)

// writeError maps a pipeline failure to a response. missing is the route's
// message for absent input.
func writeError(w http.ResponseWriter, r *http.Request, err error, missing string) {
	code, message := errorMessage(err)

	if code == http.StatusBadRequest {
		message = missing
	} else {
		slog.ErrorContext(r.Context(), "form request failed", "path", r.URL.Path, "error", err)
	}

	shared.WriteError(w, code, message)
}

func errorMessage(err error) (int, string) {
	var upstream *form.UpstreamError

	switch {
	case errors.Is(err, form.ErrMissingInput):
		return http.StatusBadRequest, ""

	case errors.As(err, &upstream):
		return http.StatusInternalServerError, upstream.Error()

	case errors.Is(err, form.ErrEmptyTranscript):
		return http.StatusInternalServerError, "Transcription returned empty text"

	case errors.Is(err, form.ErrExtraction):
		return http.StatusInternalServerError, "Failed to extract valid JSON from model response"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
