package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ragstore/internal/contextutil"
	"ragstore/internal/storage"
	"ragstore/internal/vectorstore"

	"golang.org/x/sync/errgroup"
)

const (
	passagePreviewLen = 100
	contextPreviewLen = 500
)

// Coordinator runs the retrieval signals for a query and gathers their results.
type Coordinator struct {
	stores   Stores
	vectors  vectorstore.Searcher
	embedder Embedder
}

// NewCoordinator creates a Coordinator. embedder may be nil, in which case
// RetrieveForAnswer uses only the QA signal.
func NewCoordinator(stores Stores, vectors vectorstore.Searcher, embedder Embedder) *Coordinator {
	return &Coordinator{stores: stores, vectors: vectors, embedder: embedder}
}

// HybridSearch runs vector (when an embedding is given), text, QA and tag search
// concurrently. Each bucket keeps its own ranking; scores are not compared across buckets.
func (c *Coordinator) HybridSearch(ctx context.Context, req HybridRequest) (*HybridResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	k := req.K
	if k <= 0 {
		k = DefaultK
	}

	result := &HybridResult{
		VectorResults: []VectorHit{},
		TextResults:   []*storage.Document{},
		QAResults:     []*storage.QAPair{},
		TagResults:    []*storage.Label{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if len(req.Embedding) > 0 && c.vectors != nil {
		g.Go(func() error {
			hits, err := c.vectorSearch(gctx, req.Embedding, req.FolderID, k)
			if err != nil {
				return err
			}
			result.VectorResults = hits
			return nil
		})
	}
	g.Go(func() error {
		docs, err := c.stores.Documents.SearchText(gctx, req.Query, req.FolderID, k)
		if err != nil {
			return fmt.Errorf("text search: %w", err)
		}
		result.TextResults = docs
		return nil
	})
	g.Go(func() error {
		pairs, err := c.stores.QA.Search(gctx, req.Query, req.FolderID, "")
		if err != nil {
			return fmt.Errorf("qa search: %w", err)
		}
		result.QAResults = pairs
		return nil
	})
	g.Go(func() error {
		labels, err := c.stores.Labels.SearchByTags(gctx, strings.Fields(req.Query), req.FolderID)
		if err != nil {
			return fmt.Errorf("tag search: %w", err)
		}
		result.TagResults = labels
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "hybrid search failed", "error", err)
		return nil, fmt.Errorf("failed to run hybrid search: %w", err)
	}

	result.TotalResults = len(result.VectorResults) + len(result.TextResults) +
		len(result.QAResults) + len(result.TagResults)

	logger.InfoContext(ctx, "hybrid search completed",
		"folder_id", req.FolderID,
		"k", k,
		"vector", len(result.VectorResults),
		"text", len(result.TextResults),
		"qa", len(result.QAResults),
		"tags", len(result.TagResults),
	)
	return result, nil
}

// vectorSearch ranks embedded documents and loads them. Hits whose document no
// longer exists (a stale mirror) are dropped.
func (c *Coordinator) vectorSearch(ctx context.Context, query []float32, folderID string, k int) ([]VectorHit, error) {
	var filters map[string]any
	if folderID != "" {
		filters = map[string]any{vectorstore.FilterFolderID: folderID}
	}

	matches, err := c.vectors.Search(ctx, query, k, filters)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]VectorHit, 0, len(matches))
	for _, m := range matches {
		doc, err := c.stores.Documents.Get(ctx, m.DocumentID)
		if errors.Is(err, storage.ErrNotFound) {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "vector hit without document", "document_id", m.DocumentID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load document %s: %w", m.DocumentID, err)
		}
		hits = append(hits, VectorHit{Document: doc, Similarity: m.Score})
	}
	return hits, nil
}

// RetrieveForAnswer gathers up to MaxContextPassages passages for answering query:
// vector matches first, then QA pairs. A failed query embedding or vector search
// leaves only the QA signal. When nothing matches, NoContext is set and no error
// is returned.
func (c *Coordinator) RetrieveForAnswer(ctx context.Context, query string, k int) (*AnswerContext, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		k = DefaultK
	}

	var (
		hits  []VectorHit
		pairs []*storage.QAPair
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits = c.answerVectors(gctx, query, k)
		return nil
	})
	g.Go(func() error {
		var err error
		pairs, err = c.stores.QA.Search(gctx, query, "", "")
		if err != nil {
			return fmt.Errorf("qa search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	ac := &AnswerContext{Query: query, Passages: []string{}, Sources: []Source{}}
	for _, hit := range hits {
		if len(ac.Passages) == MaxContextPassages {
			break
		}
		ac.Passages = append(ac.Passages, hit.Document.RawText)
		ac.Sources = append(ac.Sources, Source{
			Kind:       "document",
			DocumentID: hit.Document.ID,
			FolderID:   hit.Document.FolderID,
			Score:      hit.Similarity,
			Preview:    preview(hit.Document.RawText, passagePreviewLen),
		})
	}
	for _, qa := range pairs {
		if len(ac.Passages) == MaxContextPassages {
			break
		}
		passage := fmt.Sprintf("Q: %s\nA: %s", qa.Question, qa.Answer)
		ac.Passages = append(ac.Passages, passage)
		ac.Sources = append(ac.Sources, Source{
			Kind:       "qa",
			DocumentID: qa.DocumentID,
			FolderID:   qa.FolderID,
			QAID:       qa.ID,
			Preview:    preview(passage, passagePreviewLen),
		})
	}

	ac.Context = strings.Join(ac.Passages, "\n\n")
	ac.NoContext = len(ac.Passages) == 0

	for i, src := range ac.Sources {
		logger.DebugContext(ctx, "context passage", "rank", i+1, "kind", src.Kind, "document_id", src.DocumentID, "preview", src.Preview)
	}
	logger.InfoContext(ctx, "answer context retrieved",
		"vector_hits", len(hits),
		"qa_hits", len(pairs),
		"passages", len(ac.Passages),
		"no_context", ac.NoContext,
		"context_preview", preview(ac.Context, contextPreviewLen),
	)
	return ac, nil
}

func (c *Coordinator) answerVectors(ctx context.Context, query string, k int) []VectorHit {
	if c.embedder == nil || c.vectors == nil {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	vec, err := c.embedder.Embed(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "query embedding failed, skipping vector search", "error", err)
		return nil
	}
	hits, err := c.vectorSearch(ctx, vec, "", k)
	if err != nil {
		logger.WarnContext(ctx, "vector search failed, skipping", "error", err)
		return nil
	}
	return hits
}

// preview truncates s to n runes, marking the cut with "...".
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
