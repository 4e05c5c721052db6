package transcribe

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/server/shared"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	transcriber provider.Transcriber
}

func New(cfg *config.Config) (*Handler, error) {
	p, err := cfg.Transcriber(cfg.Transcribe.Model)

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		transcriber: p,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/transcribe", h.handleTranscribe)
	r.Options("/transcribe", shared.NoContent)
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	input, err := shared.ReadAudio(w, r, h.UploadLimit)

	if err != nil {
		shared.WriteAudioError(w, err)
		return
	}

	options := &provider.TranscribeOptions{
		Language: h.Transcribe.Language,
	}

	if val := r.FormValue("language"); val != "" {
		options.Language = val
	}

	transcription, err := h.transcriber.Transcribe(r.Context(), *input, options)

	if err != nil {
		slog.ErrorContext(r.Context(), "transcription failed", "error", err)

		shared.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := shared.TranscriptionResponse{
		Text: strings.TrimSpace(transcription.Text),
	}

	shared.WriteJson(w, result)
}
