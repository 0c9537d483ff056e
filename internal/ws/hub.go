package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// ClientInterface is the narrow surface Hub needs from a connected client —
// satisfied by *Client, and by test doubles.
type ClientInterface interface {
	ID() string
	UserID() string
	Send(payload []byte) error
	Close() error
}

// Hub fans events out to every client connected on behalf of a given user.
// Keyed by string userID (spec's isolation boundary) rather than the
// teacher's int32 workspaceID — this domain has no separate workspace
// concept (see SPEC_FULL.md Non-goals: "multi-tenant isolation beyond
// user_id").
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[string]ClientInterface // userID -> clientID -> client
}

// NewHub builds an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[string]ClientInterface)}
}

// Register adds a client under its user's bucket.
func (h *Hub) Register(c ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	bucket, ok := h.clients[c.UserID()]
	if !ok {
		bucket = make(map[string]ClientInterface)
		h.clients[c.UserID()] = bucket
	}
	bucket[c.ID()] = c
	log.Debug().Str("user_id", c.UserID()).Str("client_id", c.ID()).Msg("ws client registered")
}

// Unregister removes a client, pruning the user's bucket if it becomes empty.
func (h *Hub) Unregister(c ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	bucket, ok := h.clients[c.UserID()]
	if !ok {
		return
	}
	delete(bucket, c.ID())
	if len(bucket) == 0 {
		delete(h.clients, c.UserID())
	}
}

// Broadcast pushes event to every client registered for userID.
func (h *Hub) Broadcast(userID string, event Event) {
	payload, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("ws: failed to marshal event")
		return
	}

	h.mu.RLock()
	bucket := h.clients[userID]
	targets := make([]ClientInterface, 0, len(bucket))
	for _, c := range bucket {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(payload); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("client_id", c.ID()).Msg("ws: send failed, dropping client")
			h.Unregister(c)
			_ = c.Close()
		}
	}
}

// ClientCount returns the number of connections for one user.
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// TotalClientCount returns the number of connections across all users.
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, bucket := range h.clients {
		total += len(bucket)
	}
	return total
}
