// Package knowledge implements the C7 KnowledgeIndex from spec §4.8: a
// TF-IDF vectorizer over a corpus of structured documents, a
// full-text-first hybrid search that falls back to TF-IDF, and a
// chromem-go-backed semantic query (Index.Semantic) that Hybrid does not use.
package knowledge

// Document is one corpus entry (spec §4.8 / §6.2: a directory of
// structured documents {doc_id, title, category, content, source}).
type Document struct {
	DocID    string `json:"doc_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Source   string `json:"source"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	DocID   string  `json:"doc_id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// minScore is the TF-IDF relevance floor from spec §4.8.
const minScore = 0.1
