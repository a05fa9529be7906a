package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lumo/internal/note/model"
	"lumo/internal/note/service"
	"lumo/middleware"
	"lumo/pkg/logger"
	"lumo/pkg/respond"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

// ListNotes handles GET /notes. An optional ?tag= query param restricts the
// result to notes carrying that exact tag.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	tag := r.URL.Query().Get("tag")

	notes, err := h.Service.ListNotes(userID, tag)
	if err != nil {
		logger.Sugar.Errorf("Error fetching notes: %v", err)
		respond.Error(w, fmt.Errorf("failed to fetch notes: %v", err))
		return
	}
	respond.JSON(w, http.StatusOK, model.NotesResponse{Notes: notes})
}

// CreateNote handles POST /notes.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req model.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, fmt.Errorf("failed to save note: %v", err))
		return
	}

	note, err := h.Service.CreateNote(userID, req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create note: %v", err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, model.NoteResponse{Note: note})
}

// GetNote handles GET /notes/{id}.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	noteID := r.PathValue("id")

	note, err := h.Service.GetNote(userID, noteID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, model.NoteResponse{Note: note})
}

// UpdateNote handles PUT /notes/{id}. Fields absent from the body keep
// their previous values.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	noteID := r.PathValue("id")

	var patch model.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Error(w, fmt.Errorf("failed to update note: %v", err))
		return
	}

	note, err := h.Service.UpdateNote(userID, noteID, patch)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to update note %s: %v", noteID, err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, model.NoteResponse{Note: note})
}

// DeleteNote handles DELETE /notes/{id}.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	noteID := r.PathValue("id")

	if err := h.Service.DeleteNote(userID, noteID); err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete note %s: %v", noteID, err)
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, model.DeleteResponse{Success: true})
}
