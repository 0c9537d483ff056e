// Package mock implements llm.Gateway as an in-memory test double: a
// scripted queue of responses, replayed in order. Used only by the agent
// and brainstorm tests; the API server never wires it as a provider,
// matching spec §9's "test doubles are pure in-memory".
package mock

import (
	"context"
	"sync"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/llm"
)

// Provider replays a fixed script of responses, one per Chat call.
type Provider struct {
	mu        sync.Mutex
	Responses []llm.ChatResponse
	calls     int
	Err       error
}

// New builds a scripted provider.
func New(responses ...llm.ChatResponse) *Provider {
	return &Provider{Responses: responses}
}

func (p *Provider) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSpec, model string) (*llm.ChatResponse, error) {
	select {
	case <-ctx.Done():
		return nil, apperr.Cancelled("chat cancelled")
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	if p.calls >= len(p.Responses) {
		return &llm.ChatResponse{Content: "I've completed the tasks.", Model: model}, nil
	}
	resp := p.Responses[p.calls]
	p.calls++
	resp.Model = model
	return &resp, nil
}

// Calls reports how many times Chat has been invoked, for test assertions.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
