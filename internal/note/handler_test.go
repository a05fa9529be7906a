package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumo/config"
	"lumo/internal/note/model"
	"lumo/internal/note/store"
	"lumo/router"
	"lumo/socket"
)

const testSecret = "test-secret"

// countingStore records how often the store is touched, to verify that
// unauthenticated requests never reach it.
type countingStore struct {
	store.Store
	calls int
}

func (c *countingStore) List(userID, tag string) ([]model.Note, error) {
	c.calls++
	return c.Store.List(userID, tag)
}

func (c *countingStore) Create(userID, title, content string, tags []string) (*model.Note, error) {
	c.calls++
	return c.Store.Create(userID, title, content, tags)
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(filename string, audio io.Reader) (string, error) {
	return "stub transcript", nil
}

func newTestServer(t *testing.T, notes store.Store) *httptest.Server {
	t.Helper()
	hub := socket.NewHub()
	go hub.Run()

	cfg := config.Config{JWTSecret: testSecret}
	server := httptest.NewServer(router.Setup(cfg, notes, stubTranscriber{}, hub))
	t.Cleanup(server.Close)
	return server
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, server *httptest.Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeNote(t *testing.T, resp *http.Response) model.Note {
	t.Helper()
	defer resp.Body.Close()
	var body model.NoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Note)
	return *body.Note
}

func TestNotesRequireAuth(t *testing.T) {
	counting := &countingStore{Store: store.NewMemoryStore()}
	server := newTestServer(t, counting)

	resp := doRequest(t, server, http.MethodGet, "/notes", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "no token provided")

	// The store was never touched.
	assert.Zero(t, counting.calls)

	resp = doRequest(t, server, http.MethodPost, "/notes", "", model.CreateNoteRequest{Title: "t", Content: "c"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, counting.calls)
}

func TestNotesRejectInvalidToken(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())

	resp := doRequest(t, server, http.MethodGet, "/notes", "not-a-jwt", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateNoteValidation(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())
	token := signToken(t, "user-1")

	resp := doRequest(t, server, http.MethodPost, "/notes", token, model.CreateNoteRequest{Title: "", Content: ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestNoteLifecycle(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())
	token := signToken(t, "user-1")

	// Create
	resp := doRequest(t, server, http.MethodPost, "/notes", token, model.CreateNoteRequest{
		Title:   "Groceries",
		Content: "- milk\n- eggs",
		Tags:    []string{"personal"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeNote(t, resp)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsFavorite)
	assert.Equal(t, []string{"personal"}, created.Tags)

	// Favorite it
	time.Sleep(time.Millisecond)
	favorite := true
	resp = doRequest(t, server, http.MethodPut, "/notes/"+created.ID, token, model.NotePatch{IsFavorite: &favorite})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeNote(t, resp)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Tags, updated.Tags)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// List
	resp = doRequest(t, server, http.MethodGet, "/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list model.NotesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list.Notes, 1)

	// Delete
	resp = doRequest(t, server, http.MethodDelete, "/notes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted model.DeleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	resp.Body.Close()
	assert.True(t, deleted.Success)

	// Subsequent GET is a 404
	resp = doRequest(t, server, http.MethodGet, "/notes/"+created.ID, token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListNotesTagFilter(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())
	token := signToken(t, "user-1")

	for _, n := range []model.CreateNoteRequest{
		{Title: "a", Content: "a", Tags: []string{"work"}},
		{Title: "b", Content: "b", Tags: []string{"personal"}},
	} {
		resp := doRequest(t, server, http.MethodPost, "/notes", token, n)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doRequest(t, server, http.MethodGet, "/notes?tag=work", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list model.NotesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Notes, 1)
	assert.Equal(t, "a", list.Notes[0].Title)
}

func TestNotesAreScopedToCaller(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())
	alice := signToken(t, "alice")
	bob := signToken(t, "bob")

	resp := doRequest(t, server, http.MethodPost, "/notes", alice, model.CreateNoteRequest{Title: "secret", Content: "body"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note := decodeNote(t, resp)

	// Bob can't reach Alice's note even with its id.
	resp = doRequest(t, server, http.MethodGet, "/notes/"+note.ID, bob, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, server, http.MethodDelete, "/notes/"+note.ID, bob, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, server, http.MethodGet, "/notes", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list model.NotesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Empty(t, list.Notes)
}

func TestUpdateMissingNote(t *testing.T) {
	server := newTestServer(t, store.NewMemoryStore())
	token := signToken(t, "user-1")

	resp := doRequest(t, server, http.MethodPut, "/notes/missing", token, model.NotePatch{})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
