package model

import "time"

// Note is a single captured thought owned by exactly one user.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NotePatch carries a partial update. Nil fields keep their previous values.
type NotePatch struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
}

type NoteResponse struct {
	Note *Note `json:"note"`
}

type NotesResponse struct {
	Notes []Note `json:"notes"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type TranscriptionResponse struct {
	Text string `json:"text"`
}
