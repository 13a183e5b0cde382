package retrieval

import (
	"context"

	"ragstore/internal/storage"
)

// DefaultK is the number of results requested from each signal when none is given.
const DefaultK = 5

// MaxContextPassages bounds how many passages an answer context carries.
const MaxContextPassages = 5

// Embedder turns the query into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentIndex is the document side of the store the coordinator reads.
type DocumentIndex interface {
	Get(ctx context.Context, id string) (*storage.Document, error)
	SearchText(ctx context.Context, query, folderID string, limit int) ([]*storage.Document, error)
}

// QAIndex searches QA pairs.
type QAIndex interface {
	Search(ctx context.Context, query, folderID string, qType storage.QuestionType) ([]*storage.QAPair, error)
}

// TagIndex searches labels by tag.
type TagIndex interface {
	SearchByTags(ctx context.Context, tags []string, folderID string) ([]*storage.Label, error)
}

// Stores groups the indexes a Coordinator reads from.
type Stores struct {
	Documents DocumentIndex
	QA        QAIndex
	Labels    TagIndex
}

// HybridRequest is a query over every retrieval signal.
type HybridRequest struct {
	// Query is the free-text query.
	Query string `json:"query"`
	// Embedding is an optional pre-computed query vector. Vector search is skipped without it.
	Embedding []float32 `json:"embedding,omitempty"`
	// FolderID optionally scopes every signal to one folder.
	FolderID string `json:"folder_id,omitempty"`
	// K is the result count for the vector and text signals. Zero means DefaultK.
	K int `json:"k,omitempty"`
}

// VectorHit is a document matched by vector similarity.
type VectorHit struct {
	Document   *storage.Document `json:"document"`
	Similarity float64           `json:"similarity"`
}

// HybridResult keeps each signal's results separate and in that signal's own order.
type HybridResult struct {
	VectorResults []VectorHit         `json:"vector_results"`
	TextResults   []*storage.Document `json:"text_results"`
	QAResults     []*storage.QAPair   `json:"qa_results"`
	TagResults    []*storage.Label    `json:"tag_results"`
	TotalResults  int                 `json:"total_results"`
}

// Source attributes one passage of an answer context.
type Source struct {
	Kind       string  `json:"kind"` // "document" or "qa"
	DocumentID string  `json:"document_id"`
	FolderID   string  `json:"folder_id"`
	QAID       string  `json:"qa_id,omitempty"`
	Score      float64 `json:"score,omitempty"`
	Preview    string  `json:"preview"`
}

// AnswerContext is the material retrieved for answering one query.
type AnswerContext struct {
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
	Context  string   `json:"context"`
	Sources  []Source `json:"sources"`
	// NoContext is set when no signal produced anything.
	NoContext bool `json:"no_context"`
}
