package router

import (
	"net/http"

	"lumo/config"
	noteHandler "lumo/internal/note"
	"lumo/internal/note/service"
	"lumo/internal/note/store"
	"lumo/internal/transcribe"
	"lumo/middleware"
	"lumo/socket"
)

// Setup wires the store and collaborators into the HTTP surface.
func Setup(cfg config.Config, notes store.Store, transcriber transcribe.Transcriber, hub *socket.Hub) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuth(cfg.JWTSecret)

	// WebSocket event channel
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r, middleware.UserID(r))
	})
	mux.Handle("/ws", auth(wsHandler))

	// Notes API
	noteService := service.NewNoteService(notes, hub)
	notesHandler := noteHandler.NewNoteHandler(noteService)

	mux.Handle("GET /notes", auth(http.HandlerFunc(notesHandler.ListNotes)))
	mux.Handle("POST /notes", auth(http.HandlerFunc(notesHandler.CreateNote)))
	mux.Handle("GET /notes/{id}", auth(http.HandlerFunc(notesHandler.GetNote)))
	mux.Handle("PUT /notes/{id}", auth(http.HandlerFunc(notesHandler.UpdateNote)))
	mux.Handle("DELETE /notes/{id}", auth(http.HandlerFunc(notesHandler.DeleteNote)))

	// Transcription relay
	transcribeHandler := transcribe.NewHandler(transcriber)
	mux.Handle("POST /transcribe", http.HandlerFunc(transcribeHandler.Transcribe))

	return middleware.CORSMiddleware(mux)
}
