package brainstorm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/llm"
)

// maxHistoryMessages mirrors the original service's "last 10 messages for
// context" window.
const maxHistoryMessages = 10

// maxSearchResults mirrors the original "limit=5" web-search augmentation.
const maxSearchResults = 5

const chatMaxTokens = 800

// WebSearchResult is the subset of a search hit the brainstorm prompt
// augmentation needs — a narrow shape so this package doesn't depend on
// internal/tools/search directly.
type WebSearchResult struct {
	Title   string
	URL     string
	Snippet string
	Price   string
}

// WebSearcher is the narrow interface the Orchestrator depends on for
// search-augmented brainstorming; tools/search.Searcher satisfies it via a
// thin adapter at the composition root.
type WebSearcher interface {
	Search(ctx context.Context, category, query string) ([]WebSearchResult, error)
}

// Orchestrator wires an llm.Gateway (and optional WebSearcher) into the
// three-stage brainstorming framework.
type Orchestrator struct {
	gateway llm.Gateway
	search  WebSearcher
	model   string
}

// New builds an Orchestrator. search may be nil to disable web-search
// augmentation entirely (spec §4.12's "search is best-effort, never
// required").
func New(gateway llm.Gateway, search WebSearcher, model string) *Orchestrator {
	return &Orchestrator{gateway: gateway, search: search, model: model}
}

// Options configures one Brainstorm call.
type Options struct {
	Persona          Persona
	EnableWebSearch  bool
	SearchCategory   string
}

// Brainstorm generates one persona-framed response, optionally augmented
// with web-search context (spec §4.12, grounded on
// `OpenAIBrainstormService.brainstorm`).
func (o *Orchestrator) Brainstorm(ctx context.Context, userMessage string, history []HistoryEntry, opts Options) Message {
	systemPrompt := systemPromptFor(opts.Persona)

	msgs := make([]llm.Message, 0, maxHistoryMessages+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	msgs = append(msgs, historyMessages(history)...)

	var sources []Source
	finalMessage := userMessage
	if opts.EnableWebSearch && o.search != nil {
		category := opts.SearchCategory
		if category == "" {
			category = "general"
		}
		results, err := o.search.Search(ctx, category, userMessage)
		if err == nil && len(results) > 0 {
			if len(results) > maxSearchResults {
				results = results[:maxSearchResults]
			}
			sources = toSources(results)
			finalMessage = fmt.Sprintf(
				"User Query: %s\n\nWeb Search Results (use to provide current, accurate information):\n%s\n\nPlease provide a helpful response integrating the above information where relevant. Include clickable links using markdown format.",
				userMessage, formatSearchResults(results),
			)
		}
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: finalMessage})

	resp, err := o.gateway.Chat(ctx, msgs, nil, o.model)
	if err != nil {
		content := "I encountered an error processing your request. Please try again."
		if apperr.KindOf(err) == apperr.KindNotConfigured {
			content = "AI service is not available. Please check API configuration."
		}
		return Message{Role: "assistant", Content: content, Timestamp: time.Now()}
	}

	return Message{Role: "assistant", Content: resp.Content, Timestamp: time.Now(), Sources: sources}
}

func historyMessages(history []HistoryEntry) []llm.Message {
	start := 0
	if len(history) > maxHistoryMessages {
		start = len(history) - maxHistoryMessages
	}
	out := make([]llm.Message, 0, len(history)-start)
	for _, h := range history[start:] {
		role := llm.Role(h.Role)
		if role == "" {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: h.Content})
	}
	return out
}

func toSources(results []WebSearchResult) []Source {
	out := make([]Source, len(results))
	for i, r := range results {
		out[i] = Source{Title: r.Title, URL: r.URL}
	}
	return out
}

func formatSearchResults(results []WebSearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		snippet := r.Snippet
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		fmt.Fprintf(&sb, "%d. [%s](%s)\n   %s...", i+1, r.Title, r.URL, snippet)
		if r.Price != "" {
			fmt.Fprintf(&sb, "\n   Price: %s", r.Price)
		}
	}
	return sb.String()
}

// ReverseBrainstorm implements the Refinery stage: critique a list of
// ideas under the cynical-VC persona with no web search, looking for the
// weakest links (spec §4.12, grounded on `reverse_brainstorm`).
func (o *Orchestrator) ReverseBrainstorm(ctx context.Context, ideas []string, history []HistoryEntry) Message {
	if len(ideas) == 0 {
		return Message{
			Role:      "assistant",
			Content:   "No ideas to critique. Start by brainstorming some concepts first!",
			Timestamp: time.Now(),
		}
	}

	var ideasText strings.Builder
	for _, idea := range ideas {
		ideasText.WriteString("- ")
		ideasText.WriteString(idea)
		ideasText.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are now in CRITIQUE MODE (Reverse Brainstorming).

Ideas to critique:
%s
Your mission: Identify the 3 weakest links that would make a user delete the app or a customer abandon the business.

For each weakness:
1. What specific problem or flaw did you spot?
2. Why is this a critical issue (with data/examples)?
3. How severe is the risk (High/Medium/Low)?
4. What would happen if this isn't fixed?

Be brutally honest. Attack assumptions. Find the holes.

End with: "SURVIVORS: Which ideas can withstand this critique if the weaknesses are addressed?"
`, ideasText.String())

	return o.Brainstorm(ctx, prompt, history, Options{Persona: PersonaCynicalVC, EnableWebSearch: false})
}

var (
	fencedJSONArrayRe = regexp.MustCompile(`(?s)` + "```json\\s*(\\[.*?\\])\\s*```")
	bareJSONArrayRe   = regexp.MustCompile(`(?s)(\[.*\])`)
)

// ExtractCanvasCandidates implements the Anchor stage: synthesize the
// ideas that survived critique into structured canvas entries (spec
// §4.12, grounded on `extract_canvas_candidates`).
func (o *Orchestrator) ExtractCanvasCandidates(ctx context.Context, history []HistoryEntry) CanvasResult {
	if len(history) < 2 {
		return CanvasResult{Message: "No conversation history to extract from."}
	}

	start := 0
	if len(history) > maxHistoryMessages {
		start = len(history) - maxHistoryMessages
	}
	var summary strings.Builder
	for i, h := range history[start:] {
		if i > 0 {
			summary.WriteString("\n\n")
		}
		content := h.Content
		if len(content) > 300 {
			content = content[:300]
		}
		role := h.Role
		if role == "" {
			role = "user"
		}
		fmt.Fprintf(&summary, "%s: %s", strings.ToUpper(role), content)
	}

	prompt := fmt.Sprintf(`Based on this conversation:

%s

Extract the KEY IDEAS that survived critique and should be pinned to the canvas.

For each idea, provide:
1. Title (5-10 words, actionable)
2. Category (feature/risk/opportunity/insight)
3. Summary (2-3 sentences)
4. Priority (High/Medium/Low)

Return ONLY ideas that are:
- Concrete and actionable
- Have withstood criticism
- Are worth remembering/developing further

Format as JSON:
[
  {
    "title": "...",
    "category": "feature|risk|opportunity|insight",
    "content": "...",
    "priority": "high|medium|low"
  }
]
`, summary.String())

	resp := o.Brainstorm(ctx, prompt, nil, Options{Persona: PersonaSystemsThinker, EnableWebSearch: false})

	ideas, ok := parseCanvasCandidates(resp.Content)
	if !ok {
		return CanvasResult{Message: resp.Content}
	}
	return CanvasResult{Ideas: ideas, Message: "Extracted canvas candidates from conversation."}
}

func parseCanvasCandidates(content string) ([]CanvasCandidate, bool) {
	raw := extractJSONArray(content)
	if raw == "" {
		return nil, false
	}
	var ideas []CanvasCandidate
	if err := json.Unmarshal([]byte(raw), &ideas); err != nil {
		return nil, false
	}
	return ideas, true
}

func extractJSONArray(content string) string {
	if m := fencedJSONArrayRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := bareJSONArrayRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}
