package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
)

// Index is the C7 KnowledgeIndex: a TF-IDF matrix over the corpus plus a
// chromem-go collection queried only by Semantic; Hybrid combines
// full-text search and TF-IDF.
type Index struct {
	mu         sync.RWMutex
	docs       []Document
	vectorizer *Vectorizer
	vectors    [][]float64

	db         *chromem.DB
	collection *chromem.Collection
}

// New builds an empty index; Build (or AddDocument) populates it.
func New(ctx context.Context) (*Index, error) {
	db := chromem.NewDB()
	idx := &Index{db: db}
	collection, err := db.CreateCollection("knowledge", nil, idx.embed)
	if err != nil {
		return nil, fmt.Errorf("create chromem collection: %w", err)
	}
	idx.collection = collection
	return idx, nil
}

// embed is the local deterministic embedding function backing the
// chromem-go semantic layer: the corpus's own fitted TF-IDF vector,
// since no embedding-model provider is part of this deployment's stack.
func (idx *Index) embed(ctx context.Context, text string) ([]float32, error) {
	idx.mu.RLock()
	v := idx.vectorizer
	idx.mu.RUnlock()
	if v == nil {
		return []float32{0}, nil
	}
	vec := v.Vector(text)
	out := make([]float32, len(vec))
	for i, f := range vec {
		out[i] = float32(f)
	}
	if len(out) == 0 {
		out = []float32{0}
	}
	return out, nil
}

// Build fits the vectorizer over the full corpus and (re)loads the
// chromem-go collection, under an exclusive lock (spec §5: "The
// KnowledgeIndex matrix is rebuilt under exclusive lock; reads during
// rebuild wait").
func (idx *Index) Build(ctx context.Context, docs []Document) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Title + ". " + d.Content
	}
	idx.vectorizer = Fit(texts)
	idx.docs = docs
	idx.vectors = make([][]float64, len(docs))
	for i, t := range texts {
		idx.vectors[i] = idx.vectorizer.Vector(t)
	}

	if err := idx.db.DeleteCollection("knowledge"); err != nil {
		return fmt.Errorf("reset chromem collection: %w", err)
	}
	collection, err := idx.db.CreateCollection("knowledge", nil, idx.embed)
	if err != nil {
		return fmt.Errorf("recreate chromem collection: %w", err)
	}
	idx.collection = collection

	if len(docs) == 0 {
		return nil
	}
	chromeDocs := make([]chromem.Document, len(docs))
	for i, d := range docs {
		chromeDocs[i] = chromem.Document{
			ID:       d.DocID,
			Content:  texts[i],
			Metadata: map[string]string{"title": d.Title, "category": d.Category},
		}
	}
	return idx.collection.AddDocuments(ctx, chromeDocs, 1)
}

// AddDocument appends one document and rebuilds the vectorizer
// synchronously, per spec §4.8's "Add-document" behavior.
func (idx *Index) AddDocument(ctx context.Context, doc Document) error {
	idx.mu.RLock()
	docs := append(append([]Document(nil), idx.docs...), doc)
	idx.mu.RUnlock()
	return idx.Build(ctx, docs)
}

// Search implements spec §4.8's TF-IDF search: vectorize q, cosine-
// similarity against the matrix, top-k with score > 0.1.
func (idx *Index) Search(q string, k int) []SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.vectorizer == nil || len(idx.docs) == 0 {
		return nil
	}
	qVec := idx.vectorizer.Vector(q)

	type scored struct {
		i     int
		score float64
	}
	var candidates []scored
	for i, v := range idx.vectors {
		s := cosineSimilarity(qVec, v)
		if s > minScore {
			candidates = append(candidates, scored{i, s})
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })
	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]SearchResult, len(candidates))
	for i, c := range candidates {
		d := idx.docs[c.i]
		out[i] = SearchResult{DocID: d.DocID, Title: d.Title, Content: d.Content, Score: c.score}
	}
	return out
}

// fullTextSearch is a simple keyword match over title+content: a document
// matches if at least one query term (case-folded) occurs in it, ranked by
// the fraction of query terms it contains. Returns nil if nothing matches.
func (idx *Index) fullTextSearch(q string, k int) []SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	terms := tokenize(q)
	if len(terms) == 0 {
		return nil
	}

	type scored struct {
		i     int
		score float64
	}
	var candidates []scored
	for i, d := range idx.docs {
		haystack := strings.ToLower(d.Title + " " + d.Content)
		hits := 0
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		candidates = append(candidates, scored{i, float64(hits) / float64(len(terms))})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })
	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]SearchResult, len(candidates))
	for i, c := range candidates {
		d := idx.docs[c.i]
		out[i] = SearchResult{DocID: d.DocID, Title: d.Title, Content: d.Content, Score: c.score}
	}
	return out
}

// Hybrid implements spec §4.8's hybrid search: try full-text first; if it
// returns >=1 result, return its normalized ranks; else fall back to
// TF-IDF.
func (idx *Index) Hybrid(q string, k int) []SearchResult {
	if fts := idx.fullTextSearch(q, k); len(fts) > 0 {
		return fts
	}
	return idx.Search(q, k)
}

// Semantic queries the chromem-go collection directly, giving callers
// access to the vector-similarity leg on its own. The agent does not call
// it: its STATIC_KB and HEAVY_REASONING paths use Hybrid.
func (idx *Index) Semantic(ctx context.Context, q string, k int) ([]SearchResult, error) {
	idx.mu.RLock()
	collection := idx.collection
	idx.mu.RUnlock()
	if collection == nil || collection.Count() == 0 {
		return nil, nil
	}
	if k <= 0 {
		k = 5
	}
	if k > collection.Count() {
		k = collection.Count()
	}
	results, err := collection.Query(ctx, q, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem semantic query: %w", err)
	}
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{DocID: r.ID, Title: r.Metadata["title"], Content: r.Content, Score: float64(r.Similarity)}
	}
	return out, nil
}
