package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks ragstore/internal/vectorstore VectorStore,Searcher

import "context"

// FilterFolderID restricts a search to documents owned by one folder.
const FilterFolderID = "folder_id"

// Point is a document vector with its payload.
// ID is the document ID.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult is one ranked document.
type SearchResult struct {
	DocumentID string
	Score      float64
	Meta       map[string]any
}

// Searcher ranks stored document vectors against a query vector.
type Searcher interface {
	// Search returns up to k results by descending similarity.
	// A k of zero or less returns no results.
	Search(ctx context.Context, query []float32, k int, filters map[string]any) ([]SearchResult, error)
}

// VectorStore is a Searcher that also holds its own copy of the vectors.
type VectorStore interface {
	Searcher

	// Upsert inserts or updates points.
	Upsert(ctx context.Context, points []Point) error

	// Delete removes points by their IDs.
	Delete(ctx context.Context, ids []string) error
}

func folderFilter(filters map[string]any) string {
	if v, ok := filters[FilterFolderID]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
