package brainstorm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/brainstorm"
	"github.com/wealthin/agent-backend/internal/llm"
	"github.com/wealthin/agent-backend/internal/llm/providers/mock"
)

type fakeSearcher struct {
	results []brainstorm.WebSearchResult
	calls   int
}

func (f *fakeSearcher) Search(ctx context.Context, category, query string) ([]brainstorm.WebSearchResult, error) {
	f.calls++
	return f.results, nil
}

func TestBrainstorm_NeutralPersonaReturnsContent(t *testing.T) {
	provider := mock.New(llm.ChatResponse{Content: "Here's an idea..."})
	o := brainstorm.New(provider, nil, "")

	msg := o.Brainstorm(context.Background(), "I want to start a tea stall", nil, brainstorm.Options{Persona: brainstorm.PersonaNeutral})
	require.Equal(t, "Here's an idea...", msg.Content)
	require.Equal(t, "assistant", msg.Role)
	require.Empty(t, msg.Sources)
}

func TestBrainstorm_WebSearchAugmentsPromptAndPopulatesSources(t *testing.T) {
	provider := mock.New(llm.ChatResponse{Content: "augmented response"})
	searcher := &fakeSearcher{results: []brainstorm.WebSearchResult{{Title: "Scheme news", URL: "https://example.com", Snippet: "details"}}}
	o := brainstorm.New(provider, searcher, "")

	msg := o.Brainstorm(context.Background(), "latest MUDRA scheme updates", nil, brainstorm.Options{
		Persona:         brainstorm.PersonaNeutral,
		EnableWebSearch: true,
		SearchCategory:  "schemes",
	})

	require.Equal(t, 1, searcher.calls)
	require.Len(t, msg.Sources, 1)
	require.Equal(t, "Scheme news", msg.Sources[0].Title)
}

func TestReverseBrainstorm_EmptyIdeasShortCircuitsWithoutLLMCall(t *testing.T) {
	provider := mock.New(llm.ChatResponse{Content: "should not be reached"})
	o := brainstorm.New(provider, nil, "")

	msg := o.ReverseBrainstorm(context.Background(), nil, nil)
	require.Equal(t, "No ideas to critique. Start by brainstorming some concepts first!", msg.Content)
	require.Equal(t, 0, provider.Calls())
}

func TestReverseBrainstorm_CritiquesProvidedIdeas(t *testing.T) {
	provider := mock.New(llm.ChatResponse{Content: "critique output"})
	o := brainstorm.New(provider, nil, "")

	msg := o.ReverseBrainstorm(context.Background(), []string{"tea stall subscription box"}, nil)
	require.Equal(t, "critique output", msg.Content)
	require.Equal(t, 1, provider.Calls())
}

func TestExtractCanvasCandidates_ShortHistoryReturnsEmpty(t *testing.T) {
	provider := mock.New(llm.ChatResponse{Content: "unused"})
	o := brainstorm.New(provider, nil, "")

	result := o.ExtractCanvasCandidates(context.Background(), []brainstorm.HistoryEntry{{Role: "user", Content: "hi"}})
	require.Empty(t, result.Ideas)
	require.Equal(t, "No conversation history to extract from.", result.Message)
	require.Equal(t, 0, provider.Calls())
}

func TestExtractCanvasCandidates_ParsesFencedJSONArray(t *testing.T) {
	fenced := "Some preamble\n```json\n[{\"title\": \"Pilot a tea subscription\", \"category\": \"opportunity\", \"content\": \"Test demand with 20 customers\", \"priority\": \"high\"}]\n```\n"
	provider := mock.New(llm.ChatResponse{Content: fenced})
	o := brainstorm.New(provider, nil, "")

	history := []brainstorm.HistoryEntry{
		{Role: "user", Content: "I want to start a tea stall"},
		{Role: "assistant", Content: "Consider a subscription model"},
	}
	result := o.ExtractCanvasCandidates(context.Background(), history)
	require.Len(t, result.Ideas, 1)
	require.Equal(t, brainstorm.CategoryOpportunity, result.Ideas[0].Category)
	require.Equal(t, brainstorm.PriorityHigh, result.Ideas[0].Priority)
}
