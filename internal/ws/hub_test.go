package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	id       string
	userID   string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id, userID string) *mockClient {
	return &mockClient{id: id, userID: userID, messages: make([][]byte, 0)}
}

func (m *mockClient) ID() string     { return m.id }
func (m *mockClient) UserID() string { return m.userID }

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.messages))
	copy(out, m.messages)
	return out
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1 := newMockClient("client-1", "user-a")
	c2 := newMockClient("client-2", "user-a")
	c3 := newMockClient("client-3", "user-b")

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	assert.Equal(t, 2, hub.ClientCount("user-a"))
	assert.Equal(t, 1, hub.ClientCount("user-b"))
	assert.Equal(t, 0, hub.ClientCount("user-nobody"))

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount("user-a"))

	hub.Unregister(c2)
	hub.Unregister(c3)
	assert.Equal(t, 0, hub.ClientCount("user-a"))
	assert.Equal(t, 0, hub.ClientCount("user-b"))
}

func TestHub_Broadcast_UserIsolation(t *testing.T) {
	hub := NewHub()

	cA1 := newMockClient("a1", "user-a")
	cA2 := newMockClient("a2", "user-a")
	cB := newMockClient("b", "user-b")

	hub.Register(cA1)
	hub.Register(cA2)
	hub.Register(cB)

	evt := SnapshotUpdated(map[string]any{"id": float64(42)})
	hub.Broadcast("user-a", evt)

	time.Sleep(10 * time.Millisecond)

	assert.Len(t, cA1.GetMessages(), 1)
	assert.Len(t, cA2.GetMessages(), 1)
	assert.Len(t, cB.GetMessages(), 0, "user-b must not see user-a's events")
}

func TestHub_Broadcast_MultipleFanOut(t *testing.T) {
	hub := NewHub()

	clients := make([]*mockClient, 5)
	for i := 0; i < 5; i++ {
		clients[i] = newMockClient("client-"+string(rune('a'+i)), "user-a")
		hub.Register(clients[i])
	}

	evt := MilestoneReached(map[string]any{"id": float64(1)})
	hub.Broadcast("user-a", evt)

	time.Sleep(10 * time.Millisecond)

	for i, c := range clients {
		assert.Len(t, c.GetMessages(), 1, "client %d should receive message", i)
	}
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	clientCount := 50
	users := []string{"u0", "u1", "u2", "u3", "u4"}

	clients := make([]*mockClient, clientCount)
	for i := 0; i < clientCount; i++ {
		clients[i] = newMockClient("client-"+string(rune(i)), users[i%len(users)])
	}

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			hub.Register(clients[idx])
		}(i)
	}
	wg.Wait()

	total := 0
	for _, u := range users {
		total += hub.ClientCount(u)
	}
	assert.Equal(t, clientCount, total)

	for i := 0; i < clientCount; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			evt := SnapshotUpdated(map[string]any{"id": float64(idx)})
			hub.Broadcast(users[idx%len(users)], evt)
		}(i)
		go func(idx int) {
			defer wg.Done()
			hub.Unregister(clients[idx])
		}(i)
	}
	wg.Wait()

	for _, u := range users {
		assert.Equal(t, 0, hub.ClientCount(u))
	}
}

func TestHub_UnregisterNonexistent(t *testing.T) {
	hub := NewHub()
	client := newMockClient("client-1", "user-a")

	require.NotPanics(t, func() {
		hub.Unregister(client)
	})
}

func TestHub_BroadcastToUserWithNoClients(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		evt := SnapshotUpdated(map[string]any{"id": float64(1)})
		hub.Broadcast("nobody", evt)
	})
}

func TestHub_TotalClientCount(t *testing.T) {
	hub := NewHub()
	hub.Register(newMockClient("c1", "user-a"))
	hub.Register(newMockClient("c2", "user-a"))
	hub.Register(newMockClient("c3", "user-b"))

	assert.Equal(t, 3, hub.TotalClientCount())
}
