package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/tools/search"
)

type fakeProvider struct {
	calls   int
	results []search.Result
}

func (f *fakeProvider) Fetch(_ context.Context, _ string) ([]search.Result, error) {
	f.calls++
	return f.results, nil
}

func TestSearch_FiltersShortSnippetsAndNoTermHits(t *testing.T) {
	provider := &fakeProvider{results: []search.Result{
		{Title: "iPhone 15 deals", Snippet: "Great offers on the latest iPhone 15 models this week, limited time only."},
		{Title: "unrelated", Snippet: "too short"},
		{Title: "Completely unrelated topic", Snippet: "This result shares no terms with the query at all, really."},
	}}
	cache, err := search.NewCache()
	require.NoError(t, err)
	s := search.NewSearcher(provider, cache)

	results, err := s.Search(context.Background(), search.CategoryShopping, "iPhone 15")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "iPhone 15 deals", results[0].Title)
}

func TestSearch_CachesSecondCall(t *testing.T) {
	provider := &fakeProvider{results: []search.Result{
		{Title: "NSE live price update", Snippet: "Latest share price NSE BSE live today figures for this stock."},
	}}
	cache, err := search.NewCache()
	require.NoError(t, err)
	s := search.NewSearcher(provider, cache)

	_, err = s.Search(context.Background(), search.CategoryStocks, "Infosys")
	require.NoError(t, err)
	_, err = s.Search(context.Background(), search.CategoryStocks, "Infosys")
	require.NoError(t, err)

	require.Equal(t, 1, provider.calls)
}
