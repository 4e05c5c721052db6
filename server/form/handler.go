package form

import (
	"net/http"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/server/shared"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	extractor *form.Extractor
	pipeline  *form.Pipeline
}

func New(cfg *config.Config) (*Handler, error) {
	pipeline, err := cfg.Pipeline()

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		extractor: pipeline.Extractor(),
		pipeline:  pipeline,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/fill_form", h.handleFillForm)
	r.Options("/fill_form", shared.NoContent)

	r.Post("/process_audio", h.handleProcessAudio)
	r.Options("/process_audio", shared.NoContent)

	r.Get("/schema", h.handleSchema)
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	shared.WriteJson(w, h.extractor.Schema())
}
