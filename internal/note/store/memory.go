package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lumo/internal/note/model"
	"lumo/pkg/apperr"
)

// MemoryStore keeps every user's notes in a process-wide table. Nothing
// survives a restart; it serves as the reference implementation and as the
// test double for handler and service tests.
type MemoryStore struct {
	mu    sync.Mutex
	notes map[string][]model.Note // userID -> notes, insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string][]model.Note)}
}

func (s *MemoryStore) List(userID, tag string) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]model.Note, 0, len(s.notes[userID]))
	for _, n := range s.notes[userID] {
		if tag != "" && !hasTag(n.Tags, tag) {
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (s *MemoryStore) Create(userID, title, content string, tags []string) (*model.Note, error) {
	if err := validateCreate(title, content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	n := model.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      append([]string{}, tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The user's collection is created lazily on first write.
	s.notes[userID] = append(s.notes[userID], n)
	return &n, nil
}

func (s *MemoryStore) Get(userID, noteID string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notes[userID] {
		if n.ID == noteID {
			note := n
			return &note, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *MemoryStore) Update(userID, noteID string, patch model.NotePatch) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes[userID] {
		if n.ID != noteID {
			continue
		}
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Tags != nil {
			n.Tags = append([]string{}, *patch.Tags...)
		}
		if patch.IsFavorite != nil {
			n.IsFavorite = *patch.IsFavorite
		}
		n.UpdatedAt = time.Now().UTC()
		s.notes[userID][i] = n
		note := n
		return &note, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *MemoryStore) Delete(userID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.notes[userID]
	for i, n := range notes {
		if n.ID == noteID {
			s.notes[userID] = append(notes[:i], notes[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}
