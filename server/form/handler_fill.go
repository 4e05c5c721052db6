package form

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/dentalbot/scribe/server/shared"
)

const missingText = "Missing 'text' in request body"

func (h *Handler) handleFillForm(w http.ResponseWriter, r *http.Request) {
	text := h.readText(w, r)

	if text == "" {
		shared.WriteError(w, http.StatusBadRequest, missingText)
		return
	}

	result, err := h.extractor.Extract(r.Context(), text)

	if err != nil {
		writeError(w, r, err, missingText)
		return
	}

	shared.WriteJson(w, result)
}

// readText takes text from a JSON body or a form field. Anything unreadable counts as missing.
func (h *Handler) readText(w http.ResponseWriter, r *http.Request) string {
	if h.UploadLimit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.UploadLimit)
	}

	mediatype, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediatype == "application/json" {
		var body TextRequest

		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}

		if body.Text == nil {
			return ""
		}

		return strings.TrimSpace(*body.Text)
	}

	return strings.TrimSpace(r.FormValue("text"))
}
