package vectorstore

import (
	"context"
	"fmt"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
	"ragstore/internal/vecsim"
)

// EmbeddedLister lists documents that carry an embedding.
type EmbeddedLister interface {
	ListEmbedded(ctx context.Context, folderID string) ([]*storage.Document, error)
}

// ExactSearcher scores every embedded document in scope. Results are exact,
// and the cost grows linearly with the number of embedded documents.
type ExactSearcher struct {
	docs EmbeddedLister
}

// NewExactSearcher creates a searcher over the documents listed by docs.
func NewExactSearcher(docs EmbeddedLister) *ExactSearcher {
	return &ExactSearcher{docs: docs}
}

// Search ranks embedded documents by cosine similarity to query.
// Documents whose similarity is undefined (zero norm, other dimension) are left out.
func (s *ExactSearcher) Search(ctx context.Context, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return []SearchResult{}, nil
	}

	docs, err := s.docs.ListEmbedded(ctx, folderFilter(filters))
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	byID := make(map[string]*storage.Document, len(docs))
	candidates := make([]vecsim.Candidate, 0, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
		candidates = append(candidates, vecsim.Candidate{ID: doc.ID, Vector: doc.Embedding})
	}

	matches := vecsim.TopK(query, candidates, k)
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		doc := byID[m.ID]
		results = append(results, SearchResult{
			DocumentID: m.ID,
			Score:      m.Similarity,
			Meta: map[string]any{
				"folder_id":    doc.FolderID,
				"sequence_key": doc.SequenceKey.String(),
			},
		})
	}

	logger.DebugContext(ctx, "exact search completed", "candidates", len(candidates), "k", k, "results", len(results))
	return results, nil
}
