package transcribe

import (
	"net/http"

	"lumo/internal/note/model"
	"lumo/pkg/apperr"
	"lumo/pkg/logger"
	"lumo/pkg/respond"
)

type Handler struct {
	Transcriber Transcriber
}

func NewHandler(t Transcriber) *Handler {
	return &Handler{Transcriber: t}
}

// Transcribe handles POST /transcribe: multipart form with a single audio
// field named "audio". Repeating a request re-transcribes; nothing is
// cached.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		respond.Error(w, apperr.Validation("no audio file provided"))
		return
	}
	defer file.Close()

	text, err := h.Transcriber.Transcribe(header.Filename, file)
	if err != nil {
		logger.Sugar.Errorf("Transcription error: %v", err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, model.TranscriptionResponse{Text: text})
}
