package ws

// EventPublisher lets a producer push an event to a user's connected
// clients without depending on Hub directly. Hub implements it; no ledger,
// planning, docs or agent code calls Publish.
type EventPublisher interface {
	Publish(userID string, event Event)
}

var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher.
func (h *Hub) Publish(userID string, event Event) {
	h.Broadcast(userID, event)
}

// NoOpPublisher discards every event. Nothing in the module uses it.
type NoOpPublisher struct{}

func (n *NoOpPublisher) Publish(userID string, event Event) {}
