package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lumo/internal/note/model"
	"lumo/pkg/apperr"
	"lumo/pkg/logger"
)

// PostgresStore is the durable Store implementation.
//
// Expected schema:
//
//	CREATE TABLE notes (
//	    id          TEXT PRIMARY KEY,
//	    user_id     TEXT NOT NULL,
//	    title       TEXT NOT NULL,
//	    content     TEXT NOT NULL,
//	    tags        TEXT[] NOT NULL DEFAULT '{}',
//	    is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) List(userID, tag string) ([]model.Note, error) {
	query := `SELECT id, title, content, tags, is_favorite, created_at, updated_at
		FROM notes WHERE user_id = $1 ORDER BY created_at ASC`
	args := []interface{}{userID}
	if tag != "" {
		query = `SELECT id, title, content, tags, is_favorite, created_at, updated_at
			FROM notes WHERE user_id = $1 AND $2 = ANY(tags) ORDER BY created_at ASC`
		args = append(args, tag)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		var tags pq.StringArray
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &tags, &n.IsFavorite, &n.CreatedAt, &n.UpdatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan note row: %v", err)
			return nil, err
		}
		n.Tags = []string(tags)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *PostgresStore) Create(userID, title, content string, tags []string) (*model.Note, error) {
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

	_, err := s.DB.Exec(`INSERT INTO notes (id, user_id, title, content, tags, is_favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, userID, n.Title, n.Content, pq.Array(n.Tags), n.IsFavorite, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create note for user %s: %v", userID, err)
		return nil, err
	}
	return &n, nil
}

func (s *PostgresStore) Get(userID, noteID string) (*model.Note, error) {
	var n model.Note
	var tags pq.StringArray
	err := s.DB.QueryRow(`SELECT id, title, content, tags, is_favorite, created_at, updated_at
		FROM notes WHERE user_id = $1 AND id = $2`, userID, noteID).
		Scan(&n.ID, &n.Title, &n.Content, &tags, &n.IsFavorite, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get note %s: %v", noteID, err)
		return nil, err
	}
	n.Tags = []string(tags)
	return &n, nil
}

func (s *PostgresStore) Update(userID, noteID string, patch model.NotePatch) (*model.Note, error) {
	// Read-modify-write; concurrent updates are whole-operation
	// last-write-wins, same as the memory store.
	n, err := s.Get(userID, noteID)
	if err != nil {
		return nil, err
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

	result, err := s.DB.Exec(`UPDATE notes SET title = $1, content = $2, tags = $3, is_favorite = $4, updated_at = $5
		WHERE user_id = $6 AND id = $7`,
		n.Title, n.Content, pq.Array(n.Tags), n.IsFavorite, n.UpdatedAt, userID, noteID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %s: %v", noteID, err)
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.ErrNotFound
	}
	return n, nil
}

func (s *PostgresStore) Delete(userID, noteID string) error {
	result, err := s.DB.Exec(`DELETE FROM notes WHERE user_id = $1 AND id = $2`, userID, noteID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", noteID, err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
