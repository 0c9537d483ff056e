package search

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

const minSnippetLen = 30

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

func terms(s string) []string {
	return tokenRe.FindAllString(strings.ToLower(s), -1)
}

// reformulate applies spec §4.5's "queries are reformulated per category"
// rule: shopping appends site filters for two major marketplaces, stocks
// appends a live-quote phrase, and so on.
func reformulate(category Category, query string) string {
	switch category {
	case CategoryShopping:
		return query + " site:amazon.in OR site:flipkart.com"
	case CategoryStocks:
		return query + " share price NSE BSE live today"
	case CategoryNews:
		return query + " latest news"
	case CategoryHotels:
		return query + " hotels booking"
	case CategoryTravel:
		return query + " travel guide"
	case CategoryRealEstate:
		return query + " real estate listing price"
	case CategoryFashion:
		return query + " buy online"
	case CategoryLocal:
		return query + " near me"
	default:
		return query
	}
}

// Searcher ties a Provider to the TTL cache and the relevance pipeline.
type Searcher struct {
	provider Provider
	cache    *Cache
}

// NewSearcher wires a provider behind the (category, query) cache.
func NewSearcher(provider Provider, cache *Cache) *Searcher {
	return &Searcher{provider: provider, cache: cache}
}

// Search returns a filtered, relevance-sorted, cached result set for
// (category, query) per spec §4.5's search contract.
func (s *Searcher) Search(ctx context.Context, category Category, query string) ([]Result, error) {
	if cached, found := s.cache.Get(string(category), query); found {
		return cached, nil
	}

	reformulated := reformulate(category, query)
	raw, err := s.provider.Fetch(ctx, reformulated)
	if err != nil {
		return nil, err
	}

	queryTerms := terms(query)
	type scored struct {
		result Result
		hits   int
		rank   int
	}
	var kept []scored
	for rank, r := range raw {
		if len(r.Snippet) < minSnippetLen {
			continue
		}
		haystack := strings.ToLower(r.Title + " " + r.Snippet)
		hits := 0
		for _, t := range queryTerms {
			if strings.Contains(haystack, t) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		kept = append(kept, scored{result: r, hits: hits, rank: rank})
	}

	for i := range kept {
		// Decreases with original rank, increases with term-hit count.
		kept[i].result.Relevance = 1.0/float64(kept[i].rank+1) + 0.1*float64(kept[i].hits)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].result.Relevance > kept[j].result.Relevance })

	out := make([]Result, len(kept))
	for i, k := range kept {
		out[i] = k.result
	}
	s.cache.Set(string(category), query, out)
	return out, nil
}
