// Package client is the application-state layer a Lumo frontend builds on:
// a local mirror of the server's note collection, updated optimistically,
// plus the voice-capture-to-text pipeline.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"lumo/internal/note/model"
	"lumo/pkg/apperr"
)

type Draft struct {
	Title   string
	Content string
	Tags    []string
}

// NotesClient mirrors one user's note collection. Mutations round-trip
// through the API first and are applied locally only on success, so a failed
// call never corrupts the local view.
type NotesClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	mu    sync.Mutex
	notes []model.Note
	draft Draft
}

func New(baseURL, token string) *NotesClient {
	return &NotesClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{},
	}
}

// Load fetches the full note list and installs it newest-first. On any
// failure the built-in sample set is installed instead, so the note list is
// never empty because of an error; the error is still returned so the
// caller can surface a notification.
func (c *NotesClient) Load() error {
	var resp model.NotesResponse
	if err := c.do(http.MethodGet, "/notes", nil, &resp); err != nil {
		c.mu.Lock()
		c.notes = sampleNotes()
		c.mu.Unlock()
		return err
	}

	// Storage order is oldest-first; presentation is newest-first.
	notes := make([]model.Note, 0, len(resp.Notes))
	for i := len(resp.Notes) - 1; i >= 0; i-- {
		notes = append(notes, resp.Notes[i])
	}

	c.mu.Lock()
	if len(notes) == 0 {
		c.notes = sampleNotes()
	} else {
		c.notes = notes
	}
	c.mu.Unlock()
	return nil
}

// Notes returns a copy of the local note list, newest first.
func (c *NotesClient) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Note{}, c.notes...)
}

// Create saves the current draft. The note is prepended locally only after
// the server confirms; on failure the draft and list are left untouched.
func (c *NotesClient) Create() (*model.Note, error) {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	if strings.TrimSpace(draft.Content) == "" {
		return nil, apperr.Validation("nothing to save")
	}
	if draft.Title == "" {
		draft.Title = "Untitled Note"
	}

	req := model.CreateNoteRequest{Title: draft.Title, Content: draft.Content, Tags: draft.Tags}
	var resp model.NoteResponse
	if err := c.do(http.MethodPost, "/notes", req, &resp); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.notes = append([]model.Note{*resp.Note}, c.notes...)
	c.draft = Draft{}
	c.mu.Unlock()
	return resp.Note, nil
}

// ToggleFavorite flips the favorite flag, round-tripping through the API so
// the change is persisted and pushed to the user's other sessions.
func (c *NotesClient) ToggleFavorite(noteID string) error {
	c.mu.Lock()
	var current *model.Note
	for i := range c.notes {
		if c.notes[i].ID == noteID {
			current = &c.notes[i]
			break
		}
	}
	c.mu.Unlock()
	if current == nil {
		return apperr.ErrNotFound
	}

	favorite := !current.IsFavorite
	patch := model.NotePatch{IsFavorite: &favorite}
	var resp model.NoteResponse
	if err := c.do(http.MethodPut, "/notes/"+noteID, patch, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.notes {
		if c.notes[i].ID == noteID {
			c.notes[i] = *resp.Note
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Delete removes the note on the server, then locally.
func (c *NotesClient) Delete(noteID string) error {
	var resp model.DeleteResponse
	if err := c.do(http.MethodDelete, "/notes/"+noteID, nil, &resp); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.notes {
		if c.notes[i].ID == noteID {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// FilterByTag returns the local notes carrying the exact tag.
func (c *NotesClient) FilterByTag(tag string) []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []model.Note
	for _, n := range c.notes {
		for _, t := range n.Tags {
			if t == tag {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Search matches the query against title, content and tags,
// case-insensitively.
func (c *NotesClient) Search(query string) []model.Note {
	query = strings.ToLower(query)
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []model.Note
	for _, n := range c.notes {
		if strings.Contains(strings.ToLower(n.Title), query) ||
			strings.Contains(strings.ToLower(n.Content), query) {
			out = append(out, n)
			continue
		}
		for _, t := range n.Tags {
			if strings.Contains(strings.ToLower(t), query) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Draft returns the note currently being composed.
func (c *NotesClient) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the note currently being composed.
func (c *NotesClient) SetDraft(d Draft) {
	c.mu.Lock()
	c.draft = d
	c.mu.Unlock()
}

// TranscribeAudio sends captured audio to the transcription relay and
// splices the returned text into the draft body. An untitled draft gets a
// timestamped voice-note title.
func (c *NotesClient) TranscribeAudio(filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/transcribe", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var result model.TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.draft.Content == "" {
		c.draft.Content = result.Text
	} else {
		c.draft.Content += "\n" + result.Text
	}
	if c.draft.Title == "" {
		c.draft.Title = "Voice Note - " + time.Now().Format("3:04:05 PM")
	}
	c.mu.Unlock()
	return result.Text, nil
}

func (c *NotesClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s", body.Error)
	}
	return fmt.Errorf("request failed: %s", resp.Status)
}

// sampleNotes is the fixed fallback shown when the server can't be reached
// or the user has no notes yet.
func sampleNotes() []model.Note {
	now := time.Now()
	return []model.Note{
		{
			ID:         "sample-1",
			Title:      "Meeting with Design Team",
			Content:    "# Meeting with Design Team\n\nDiscuss the new UI components and color palette for the mobile app.",
			Tags:       []string{"design", "mobile"},
			IsFavorite: true,
			CreatedAt:  now.Add(-24 * time.Hour),
			UpdatedAt:  now.Add(-24 * time.Hour),
		},
		{
			ID:        "sample-2",
			Title:     "Shopping List",
			Content:   "- Buy groceries\n- Call mom\n- Schedule dentist appointment",
			Tags:      []string{"personal"},
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        "sample-3",
			Title:     "Quarterly Report Reminder",
			Content:   "Remember to send the quarterly report by Friday.",
			Tags:      []string{"work"},
			CreatedAt: now.Add(-72 * time.Hour),
			UpdatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:         "sample-4",
			Title:      "App Feature Ideas",
			Content:    "# New Feature Ideas\n\n1. **Dark mode toggle**\n2. *Voice commands*\n3. Collaborative editing\n4. Export to PDF",
			Tags:       []string{"ideas", "development"},
			IsFavorite: true,
			CreatedAt:  now.Add(-96 * time.Hour),
			UpdatedAt:  now.Add(-96 * time.Hour),
		},
	}
}
