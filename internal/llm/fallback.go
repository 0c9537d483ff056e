package llm

import (
	"context"
	"errors"

	"github.com/wealthin/agent-backend/internal/apperr"
)

// FallbackGateway tries each underlying Gateway in order, falling through
// to the next on failure (spec §4.6: "implementations may fall back
// between providers ... but must preserve the return shape").
type FallbackGateway struct {
	providers []Gateway
}

// NewFallbackGateway wires an ordered provider chain. A nil entry is
// skipped (lets callers wire an optional provider without a branch).
func NewFallbackGateway(providers ...Gateway) *FallbackGateway {
	var filtered []Gateway
	for _, p := range providers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	return &FallbackGateway{providers: filtered}
}

func (g *FallbackGateway) Chat(ctx context.Context, messages []Message, tools []ToolSpec, model string) (*ChatResponse, error) {
	if len(g.providers) == 0 {
		return nil, apperr.NotConfigured("no LLM provider configured")
	}

	var lastErr error
	for _, p := range g.providers {
		resp, err := p.Chat(ctx, messages, tools, model)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.Canceled) || apperr.KindOf(err) == apperr.KindCancelled {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperr.Transient("all LLM providers failed", lastErr)
}
