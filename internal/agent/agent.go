package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wealthin/agent-backend/internal/apperr"
	"github.com/wealthin/agent-backend/internal/knowledge"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/router"
	"github.com/wealthin/agent-backend/internal/tools"
	"github.com/wealthin/agent-backend/internal/tools/search"
)

// maxIterations is K in spec §4.6 step 3's ReAct bound (P7).
const maxIterations = 5

// staticKBRelevanceThreshold is the "relevance threshold" spec §4.6 step 2
// gates STATIC_KB's direct-answer shortcut on, set above Hybrid's own
// minimum-score floor so only a confident hit skips the tool path.
const staticKBRelevanceThreshold = 0.2

// KnowledgeSearcher is the narrow interface the Agent depends on for the
// STATIC_KB and HEAVY_REASONING paths; knowledge.Index satisfies it.
type KnowledgeSearcher interface {
	Hybrid(q string, k int) []knowledge.SearchResult
}

// Agent wires the Gateway, tool Registry, Router and KnowledgeIndex into
// the ReAct loop and its five shortcut paths.
type Agent struct {
	gateway   llm.Gateway
	registry  *tools.Registry
	router    *router.Router
	knowledge KnowledgeSearcher
	model     string
}

// New builds an Agent. model is the default model name passed to every
// Gateway.Chat call; an empty string lets the configured provider pick
// its own default.
func New(gateway llm.Gateway, registry *tools.Registry, rtr *router.Router, kb KnowledgeSearcher, model string) *Agent {
	return &Agent{gateway: gateway, registry: registry, router: rtr, knowledge: kb, model: model}
}

// Run executes the full classify-then-dispatch flow (spec §4.6). It never
// returns an error: every exit path is a structured Response (spec §7
// "the agent never raises past its own boundary").
func (a *Agent) Run(ctx context.Context, req Request) Response {
	classification := a.router.Classify(req.Query)

	var resp Response
	switch classification.Label {
	case router.LabelGovAPI:
		resp = a.handleGovAPI(ctx, req)
	case router.LabelTransaction:
		resp = a.reactLoop(ctx, req, classification, tools.FamilyAction, tools.FamilyCalculator)
	case router.LabelStaticKB:
		resp = a.handleStaticKB(ctx, req, classification)
	case router.LabelWebSearch:
		resp = a.handleWebSearch(ctx, req)
	case router.LabelHeavyReasoning:
		resp = a.handleHeavyReasoning(ctx, req)
	default: // SIMPLE
		resp = a.reactLoop(ctx, req, classification)
	}
	resp.QueryType = string(classification.Label)
	return resp
}

func (a *Agent) systemPrompt(userContext string) string {
	sb := strings.Builder{}
	sb.WriteString("You are a personal finance assistant for Indian retail users. ")
	sb.WriteString("Use the available tools when a calculation, lookup, or account action is needed. ")
	sb.WriteString("Prepared actions require explicit user confirmation before they take effect.")
	if userContext != "" {
		sb.WriteString("\n\nUser context:\n")
		sb.WriteString(userContext)
	}
	return sb.String()
}

// reactLoop implements spec §4.6 step 3's bounded tool-calling sub-loop.
// families restricts the advertised tool set (empty means every family,
// used by the SIMPLE path).
func (a *Agent) reactLoop(ctx context.Context, req Request, classification router.Classification, families ...tools.Family) Response {
	msgs := make([]llm.Message, 0, len(req.ConversationHistory)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: a.systemPrompt(req.UserContext)})
	msgs = append(msgs, req.ConversationHistory...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Query})

	specs := a.registry.Specs(families...)

	var lastAction *tools.Result
	model := a.model

	for i := 0; i < maxIterations; i++ {
		if ctx.Err() != nil { // P8: no call/dispatch past a cancellation signal
			return a.cancelledResponse(lastAction)
		}

		resp, err := a.gateway.Chat(ctx, msgs, specs, a.model)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindCancelled {
				return a.cancelledResponse(lastAction)
			}
			return a.fallbackResponse(err, lastAction)
		}
		model = resp.Model

		if len(resp.ToolCalls) == 0 {
			return a.finalResponse(resp.Content, lastAction, model)
		}

		msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: resp.Content})
		for _, tc := range resp.ToolCalls {
			if ctx.Err() != nil { // P8: between tool dispatches too
				return a.cancelledResponse(lastAction)
			}
			result := a.registry.Dispatch(ctx, req.UserID, tc.Name, tc.Arguments)
			msgs = append(msgs, llm.Message{Role: llm.RoleTool, Content: result.JSON(), ToolCallID: tc.ID, Name: tc.Name})

			if result.NeedsConfirmation {
				r := result
				lastAction = &r
				if r.Message != "" {
					// Early exit permitted (spec §4.6 step 3) once a
					// prepared action has a human-readable prompt ready.
					return Response{
						ResponseText:      r.Message,
						ActionTaken:       true,
						ActionType:        r.Action,
						ActionData:        r.Data,
						NeedsConfirmation: true,
						ModelUsed:         model,
					}
				}
			}
		}
	}

	return a.finalResponse(lastAssistantContent(msgs), lastAction, model)
}

func lastAssistantContent(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleAssistant && msgs[i].Content != "" {
			return msgs[i].Content
		}
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleTool {
			return "Here's what I found: " + msgs[i].Content
		}
	}
	return ""
}

func (a *Agent) finalResponse(text string, lastAction *tools.Result, model string) Response {
	cleaned := cleanFinalAnswer(text)
	if cleaned == "" {
		cleaned = "I've completed the tasks."
	}
	resp := Response{ResponseText: cleaned, ModelUsed: model}
	if lastAction != nil {
		resp.ActionTaken = true
		resp.ActionType = lastAction.Action
		resp.ActionData = lastAction.Data
		resp.NeedsConfirmation = lastAction.NeedsConfirmation
	}
	return resp
}

// fallbackResponse is spec §7's "Transient / Upstream" policy: "a final-
// response fallback (a deterministic short paragraph) is always produced."
func (a *Agent) fallbackResponse(err error, lastAction *tools.Result) Response {
	msg := "I'm unable to complete that request right now due to a temporary issue. Please try again shortly."
	if apperr.KindOf(err) == apperr.KindNotConfigured {
		msg = "This assistant isn't fully configured yet — please contact support."
	}
	resp := Response{ResponseText: msg, ModelUsed: "fallback"}
	if lastAction != nil {
		resp.ActionTaken = true
		resp.ActionType = lastAction.Action
		resp.ActionData = lastAction.Data
		resp.NeedsConfirmation = lastAction.NeedsConfirmation
	}
	return resp
}

func (a *Agent) cancelledResponse(lastAction *tools.Result) Response {
	resp := Response{ResponseText: "Request cancelled.", ModelUsed: "cancelled"}
	if lastAction != nil {
		resp.ActionTaken = true
		resp.ActionType = lastAction.Action
		resp.ActionData = lastAction.Data
		resp.NeedsConfirmation = lastAction.NeedsConfirmation
	}
	return resp
}

// handleGovAPI implements spec §4.6 step 2's GOV_API path.
func (a *Agent) handleGovAPI(ctx context.Context, req Request) Response {
	toolName, token, found := router.ExtractGovID(req.Query)
	if !found {
		return Response{ResponseText: "Please share the PAN or GSTIN you'd like me to verify.", ModelUsed: "router"}
	}
	args, _ := json.Marshal(map[string]string{"id": token})
	result := a.registry.Dispatch(ctx, req.UserID, toolName, args)
	return Response{
		ResponseText: result.Message,
		ActionTaken:  true,
		ActionType:   toolName,
		ActionData:   result.Data,
		ModelUsed:    "router",
	}
}

// handleStaticKB implements spec §4.6 step 2's STATIC_KB path: a confident
// hit answers directly; otherwise it falls through to the tool path.
func (a *Agent) handleStaticKB(ctx context.Context, req Request, classification router.Classification) Response {
	if a.knowledge != nil {
		hits := a.knowledge.Hybrid(req.Query, 3)
		if len(hits) > 0 && hits[0].Score > staticKBRelevanceThreshold {
			return Response{
				ResponseText: hits[0].Content,
				Sources:      []string{hits[0].Title},
				ModelUsed:    "knowledge",
			}
		}
	}
	return a.reactLoop(ctx, req, classification)
}

// handleWebSearch implements spec §4.6 step 2's WEB_SEARCH path: call
// web_search and format the top results, with no LLM call.
func (a *Agent) handleWebSearch(ctx context.Context, req Request) Response {
	args, _ := json.Marshal(map[string]string{"query": req.Query})
	result := a.registry.Dispatch(ctx, req.UserID, "web_search", args)
	if !result.Success {
		return Response{ResponseText: result.Message, ModelUsed: "router"}
	}
	results, ok := result.Data.([]search.Result)
	if !ok || len(results) == 0 {
		return Response{ResponseText: "I couldn't find anything useful for that search.", ModelUsed: "router"}
	}

	const topN = 5
	if len(results) > topN {
		results = results[:topN]
	}
	var sb strings.Builder
	sources := make([]string, 0, len(results))
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", r.Title, r.Snippet, r.URL))
		sources = append(sources, r.URL)
	}
	return Response{ResponseText: strings.TrimSpace(sb.String()), Sources: sources, ModelUsed: "router"}
}

// handleHeavyReasoning implements spec §4.6 step 2's HEAVY_REASONING path:
// prepend up to two top knowledge hits as context and call Chat with no
// tools.
func (a *Agent) handleHeavyReasoning(ctx context.Context, req Request) Response {
	var sources []string
	userContext := req.UserContext
	if a.knowledge != nil {
		hits := a.knowledge.Hybrid(req.Query, 2)
		if len(hits) > 0 {
			var sb strings.Builder
			sb.WriteString("\n\nRelevant reference material:\n")
			for _, h := range hits {
				sb.WriteString("- " + h.Title + ": " + h.Content + "\n")
				sources = append(sources, h.Title)
			}
			userContext += sb.String()
		}
	}

	msgs := make([]llm.Message, 0, len(req.ConversationHistory)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: a.systemPrompt(userContext)})
	msgs = append(msgs, req.ConversationHistory...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Query})
	resp, err := a.gateway.Chat(ctx, msgs, nil, a.model)
	if err != nil {
		return a.fallbackResponse(err, nil)
	}
	return Response{ResponseText: cleanFinalAnswer(resp.Content), Sources: sources, ModelUsed: resp.Model}
}
