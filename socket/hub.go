// Package socket pushes note mutations to a user's open sessions over
// WebSocket, so every tab and device converges on the same note list without
// polling.
package socket

import (
	"encoding/json"
	"sync"

	"lumo/internal/note/model"
	"lumo/pkg/logger"
)

const (
	NoteCreatedType = "NOTE_CREATED"
	NoteUpdatedType = "NOTE_UPDATED"
	NoteDeletedType = "NOTE_DELETED"
)

// Event is a single note mutation fanned out to all sessions of one user.
// Note is present for creates and updates; deletes carry only NoteID.
type Event struct {
	Type   string      `json:"type"`
	UserID string      `json:"-"`
	NoteID string      `json:"note_id"`
	Note   *model.Note `json:"note,omitempty"`
}

type Hub struct {
	// Sessions maps a userID to that user's open connections.
	Sessions   map[string]map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Sessions:   make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish hands an event to the hub without blocking the caller. A nil hub
// is a no-op so the service layer can run without a live event channel in
// tests.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	h.Broadcast <- event
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Sessions[client.UserID] == nil {
				h.Sessions[client.UserID] = make(map[*Client]bool)
			}
			h.Sessions[client.UserID][client] = true
			h.mu.Unlock()
			logger.Sugar.Infof("Session opened for user %s", client.UserID)

		case client := <-h.Unregister:
			h.remove(client)

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling event: %v", err)
				continue
			}

			// Copy the recipient list so no socket I/O happens under the lock.
			// Every session of the owning user receives the event, including
			// the one that issued the mutation; other users never do.
			h.mu.Lock()
			clients := make([]*Client, 0, len(h.Sessions[event.UserID]))
			for client := range h.Sessions[event.UserID] {
				clients = append(clients, client)
			}
			h.mu.Unlock()

			for _, client := range clients {
				select {
				case client.Send <- payload:
				default:
					// Full send buffer means the client is lagging. Drop it
					// rather than blocking the hub.
					logger.Sugar.Warnf("Session for user %s is lagging. Unregistering.", client.UserID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Sessions[client.UserID][client]; ok {
		delete(h.Sessions[client.UserID], client)
		close(client.Send)
		if len(h.Sessions[client.UserID]) == 0 {
			delete(h.Sessions, client.UserID)
		}
	}
}
