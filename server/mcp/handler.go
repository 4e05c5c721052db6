package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/pkg/form"
	"github.com/dentalbot/scribe/pkg/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/google/jsonschema-go/jsonschema"
)

type Handler struct {
	*config.Config

	server *mcp.Server
}

func New(cfg *config.Config) (*Handler, error) {
	extractor, err := cfg.Extractor()

	if err != nil {
		return nil, err
	}

	s, err := mcp.New("scribe", fillFormTool(extractor))

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		server: s,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Handle("/mcp", h.server)
}

func fillFormTool(e *form.Extractor) mcp.Tool {
	return mcp.Tool{
		Name:        "fill_form",
		Description: "Fill the dental intake form from a visit transcript. Returns every form field as a string, empty when not mentioned.",

		Schema: &jsonschema.Schema{
			Type: "object",

			Properties: map[string]*jsonschema.Schema{
				"text": {
					Type:        "string",
					Description: "Transcript of the conversation with the patient.",
				},
			},

			Required: []string{"text"},
		},

		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			text, _ := args["text"].(string)

			if strings.TrimSpace(text) == "" {
				return nil, errors.New("missing text")
			}

			return e.Extract(ctx, text)
		},
	}
}
