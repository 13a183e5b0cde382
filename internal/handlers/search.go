package handlers

import (
	"context"
	"net/http"
	"strings"

	"ragstore/internal/contextutil"
	"ragstore/internal/retrieval"
)

// maxSearchK caps the per-signal result count a client may request.
const maxSearchK = 50

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_handlers.go -package=mocks ragstore/internal/handlers HybridSearcher,Answerer

// HybridSearcher runs a query over every retrieval signal.
type HybridSearcher interface {
	HybridSearch(ctx context.Context, req retrieval.HybridRequest) (*retrieval.HybridResult, error)
}

// SearchHandler handles HTTP requests for hybrid search.
type SearchHandler struct {
	searcher HybridSearcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher HybridSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchRequest represents the HTTP request payload for hybrid search.
//
// swagger:model SearchRequest
type SearchRequest struct {
	Query     string    `json:"query"`
	Embedding []float32 `json:"embedding,omitempty"`
	FolderID  string    `json:"folder_id,omitempty"`
	K         int       `json:"k,omitempty"`
}

// SearchResponse keeps each signal's results separate.
//
// swagger:model SearchResponse
type SearchResponse struct {
	VectorResults []VectorHitResponse `json:"vector_results"`
	TextResults   []DocumentResponse  `json:"text_results"`
	QAResults     []QAResponse        `json:"qa_results"`
	TagResults    []LabelResponse     `json:"tag_results"`
	TotalResults  int                 `json:"total_results"`
}

// VectorHitResponse is a document matched by vector similarity.
type VectorHitResponse struct {
	Document   DocumentResponse `json:"document"`
	Similarity float64          `json:"similarity"`
}

// ServeHTTP handles HTTP requests for hybrid search.
//
// swagger:route POST /api/search hybridSearch
//
// # Hybrid search
//
// Runs vector, text, QA and tag search over the store, optionally scoped to one folder.
// Vector search only runs when an embedding is supplied.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Results grouped by signal
//	  schema:
//	    "$ref": "#/definitions/SearchResponse"
//	'400':
//	  description: Bad request (missing query)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" && len(req.Embedding) == 0 {
		logger.WarnContext(ctx, "empty search request")
		writeError(w, http.StatusBadRequest, "Query or embedding is required")
		return
	}
	if req.K < 0 {
		req.K = 0
	}
	if req.K > maxSearchK {
		req.K = maxSearchK
	}

	result, err := h.searcher.HybridSearch(ctx, retrieval.HybridRequest{
		Query:     req.Query,
		Embedding: req.Embedding,
		FolderID:  req.FolderID,
		K:         req.K,
	})
	if err != nil {
		handleError(ctx, w, err, "Failed to search")
		return
	}

	resp := SearchResponse{
		VectorResults: make([]VectorHitResponse, 0, len(result.VectorResults)),
		TextResults:   toDocumentResponses(result.TextResults),
		QAResults:     make([]QAResponse, 0, len(result.QAResults)),
		TagResults:    make([]LabelResponse, 0, len(result.TagResults)),
		TotalResults:  result.TotalResults,
	}
	for _, hit := range result.VectorResults {
		resp.VectorResults = append(resp.VectorResults, VectorHitResponse{
			Document:   toDocumentResponse(hit.Document),
			Similarity: hit.Similarity,
		})
	}
	for _, qa := range result.QAResults {
		resp.QAResults = append(resp.QAResults, toQAResponse(qa))
	}
	for _, l := range result.TagResults {
		resp.TagResults = append(resp.TagResults, toLabelResponse(l))
	}

	logger.InfoContext(ctx, "search completed", "total_results", resp.TotalResults)
	writeJSON(ctx, w, http.StatusOK, resp)
}
