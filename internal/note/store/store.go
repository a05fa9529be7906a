// Package store owns the authoritative representation of all users' notes.
//
// Store is the narrow persistence contract the rest of the service depends
// on. MemoryStore is the reference implementation; PostgresStore is the
// durable one. Both scope every lookup by the owning userID, so a request
// can never touch another user's note.
package store

import (
	"lumo/internal/note/model"
	"lumo/pkg/apperr"
)

type Store interface {
	// List returns the user's notes in insertion order, restricted to notes
	// tagged with tag when it is non-empty. Unknown users yield an empty
	// list, never an error.
	List(userID, tag string) ([]model.Note, error)
	Create(userID, title, content string, tags []string) (*model.Note, error)
	Get(userID, noteID string) (*model.Note, error)
	Update(userID, noteID string, patch model.NotePatch) (*model.Note, error)
	Delete(userID, noteID string) error
}

func validateCreate(title, content string) error {
	if title == "" || content == "" {
		return apperr.Validation("title and content are required")
	}
	return nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
