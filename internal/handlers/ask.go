package handlers

import (
	"context"
	"net/http"
	"strings"

	"ragstore/internal/contextutil"
	"ragstore/internal/retrieval"
)

// maxAskK caps the per-signal result count for answer retrieval.
const maxAskK = 20

// Answerer answers a question from retrieved context.
type Answerer interface {
	Answer(ctx context.Context, query string, k int) (*retrieval.Answer, error)
}

// AskHandler handles HTTP requests for context-grounded answers.
type AskHandler struct {
	answerer Answerer
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(answerer Answerer) *AskHandler {
	return &AskHandler{answerer: answerer}
}

// AskRequest represents the HTTP request payload for questions.
//
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

// AskResponse represents the HTTP response payload for questions.
//
// swagger:model AskResponse
type AskResponse struct {
	// The generated answer
	Answer string `json:"answer"`

	// Passages the answer was based on
	Sources []retrieval.Source `json:"sources"`

	// ContextUsed is the context block sent to the model.
	ContextUsed string `json:"context_used,omitempty"`

	// NoContext is set when nothing was retrieved and the model answered unaided.
	NoContext bool `json:"no_context"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/ask askQuestion
//
// # Ask a question
//
// Retrieves passages from every signal and asks the model to answer from them.
// When nothing is retrieved the model answers without context and no_context is set.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Successful response with answer and sources
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Bad request (missing question)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: LLM service unavailable
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	if req.K < 0 {
		req.K = 0
	}
	if req.K > maxAskK {
		req.K = maxAskK
	}

	answer, err := h.answerer.Answer(ctx, req.Question, req.K)
	if err != nil {
		handleError(ctx, w, err, "Failed to answer question")
		return
	}

	sources := answer.Sources
	if sources == nil {
		sources = []retrieval.Source{}
	}
	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:      answer.Answer,
		Sources:     sources,
		ContextUsed: answer.ContextUsed,
		NoContext:   answer.NoContext,
	})
}
