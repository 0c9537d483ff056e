package tools

import (
	"context"
	"encoding/json"

	"github.com/wealthin/agent-backend/internal/tools/ratelimit"
	"github.com/wealthin/agent-backend/internal/tools/search"
)

// RegisterSearchTool wires web_search (spec §4.5 "Search"), gated by a
// per-user rate limiter in front of the outbound HTTP call.
func RegisterSearchTool(r *Registry, searcher *search.Searcher, limiter *ratelimit.Limiter) {
	r.Register(Tool{
		Name: "web_search", Family: FamilySearch,
		Description: "Search the web for current information, optionally scoped to a category.",
		Schema: schema(`{"query":{"type":"string"},"category":{"type":"string","enum":["general","shopping","news","finance","travel","fashion","real_estate","stocks","hotels","local"]}}`,
			"query"),
		Handle: func(ctx context.Context, userID string, args json.RawMessage) Result {
			var in struct {
				Query    string `json:"query"`
				Category string `json:"category"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return failed("web_search", err.Error())
			}
			if in.Category == "" {
				in.Category = string(search.CategoryGeneral)
			}
			if limiter != nil && !limiter.Allow(userID) {
				return failed("web_search", "rate limit exceeded, try again shortly")
			}
			results, err := searcher.Search(ctx, search.Category(in.Category), in.Query)
			if err != nil {
				return failed("web_search", err.Error())
			}
			return ok("web_search", results, "web search completed")
		},
	})
}
