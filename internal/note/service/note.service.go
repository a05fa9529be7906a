package service

import (
	"lumo/internal/note/model"
	"lumo/internal/note/store"
	"lumo/socket"
)

// NoteService binds the note store to the event hub: every successful
// mutation is pushed to the owning user's open sessions.
type NoteService struct {
	Store store.Store
	Hub   *socket.Hub
}

func NewNoteService(s store.Store, hub *socket.Hub) *NoteService {
	return &NoteService{Store: s, Hub: hub}
}

func (s *NoteService) ListNotes(userID, tag string) ([]model.Note, error) {
	return s.Store.List(userID, tag)
}

func (s *NoteService) CreateNote(userID string, req model.CreateNoteRequest) (*model.Note, error) {
	n, err := s.Store.Create(userID, req.Title, req.Content, req.Tags)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.Event{Type: socket.NoteCreatedType, UserID: userID, NoteID: n.ID, Note: n})
	return n, nil
}

func (s *NoteService) GetNote(userID, noteID string) (*model.Note, error) {
	return s.Store.Get(userID, noteID)
}

func (s *NoteService) UpdateNote(userID, noteID string, patch model.NotePatch) (*model.Note, error) {
	n, err := s.Store.Update(userID, noteID, patch)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.Event{Type: socket.NoteUpdatedType, UserID: userID, NoteID: n.ID, Note: n})
	return n, nil
}

func (s *NoteService) DeleteNote(userID, noteID string) error {
	if err := s.Store.Delete(userID, noteID); err != nil {
		return err
	}
	s.Hub.Publish(socket.Event{Type: socket.NoteDeletedType, UserID: userID, NoteID: noteID})
	return nil
}
