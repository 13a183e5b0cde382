package handlers

import (
	"net/http"

	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// AnnotationHandler handles HTTP requests that query labels and QA pairs across documents.
type AnnotationHandler struct {
	content *service.ContentService
}

// NewAnnotationHandler creates a new AnnotationHandler.
func NewAnnotationHandler(content *service.ContentService) *AnnotationHandler {
	return &AnnotationHandler{content: content}
}

// Labels returns the labels in ?category, optionally scoped by ?folder_id.
//
// swagger:route GET /api/labels listLabelsByCategory
//
// responses:
//
//	'200': []LabelResponse
//	'400': ErrorResponse
func (h *AnnotationHandler) Labels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	labels, err := h.content.LabelsByCategory(ctx, q.Get("category"), q.Get("folder_id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to list labels")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toLabelResponses(labels))
}

// QA returns the QA pairs of ?difficulty, optionally scoped by ?folder_id.
//
// swagger:route GET /api/qa listQAByDifficulty
//
// responses:
//
//	'200': []QAResponse
//	'400': ErrorResponse
func (h *AnnotationHandler) QA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	pairs, err := h.content.QAByDifficulty(ctx, storage.Difficulty(q.Get("difficulty")), q.Get("folder_id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to list qa pairs")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toQAResponses(pairs))
}
