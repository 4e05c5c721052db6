package form

import (
	"net/http"

	"github.com/dentalbot/scribe/server/shared"
)

func (h *Handler) handleProcessAudio(w http.ResponseWriter, r *http.Request) {
	input, err := shared.ReadAudio(w, r, h.UploadLimit)

	if err != nil {
		shared.WriteAudioError(w, err)
		return
	}

	submission, err := h.pipeline.Process(r.Context(), *input)

	if err != nil {
		writeError(w, r, err, "No audio file")
		return
	}

	shared.WriteJson(w, submission)
}
