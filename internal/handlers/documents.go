package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ragstore/internal/contextutil"
	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// DocumentHandler handles HTTP requests for documents and their annotations.
type DocumentHandler struct {
	content *service.ContentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(content *service.ContentService) *DocumentHandler {
	return &DocumentHandler{content: content}
}

// CreateDocumentRequest represents the HTTP request payload for storing a document.
// An empty folder_id places the document in the default folder.
//
// swagger:model CreateDocumentRequest
type CreateDocumentRequest struct {
	FolderID    string              `json:"folder_id,omitempty"`
	SequenceKey storage.SequenceKey `json:"sequence_key"`
	RawText     string              `json:"raw_text"`
	Embedding   []float32           `json:"embedding,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
}

// UpdateEmbeddingRequest replaces a document's embedding. An empty embedding clears it.
//
// swagger:model UpdateEmbeddingRequest
type UpdateEmbeddingRequest struct {
	Embedding []float32 `json:"embedding"`
}

// UpdateMetadataRequest replaces a document's metadata map.
//
// swagger:model UpdateMetadataRequest
type UpdateMetadataRequest struct {
	Metadata map[string]any `json:"metadata"`
}

// CreateLabelRequest represents the HTTP request payload for labeling a document.
//
// swagger:model CreateLabelRequest
type CreateLabelRequest struct {
	FolderID   string   `json:"folder_id,omitempty"`
	Topic      string   `json:"topic"`
	Tags       []string `json:"tags,omitempty"`
	Category   string   `json:"category,omitempty"`
	// Confidence defaults to 0.8 when omitted; an explicit 0 is kept.
	Confidence *float64 `json:"confidence,omitempty"`
}

// CreateQARequest represents the HTTP request payload for attaching a QA pair.
// A missing question_type is classified from the question.
//
// swagger:model CreateQARequest
type CreateQARequest struct {
	FolderID     string `json:"folder_id,omitempty"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	QuestionType string `json:"question_type,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// Create stores a document.
//
// swagger:route POST /api/documents createDocument
//
// responses:
//
//	'201': DocumentResponse
//	'400': ErrorResponse
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc := &storage.Document{
		FolderID:    req.FolderID,
		SequenceKey: req.SequenceKey,
		RawText:     req.RawText,
		Embedding:   req.Embedding,
		Metadata:    req.Metadata,
	}
	if err := h.content.InsertDocument(ctx, doc); err != nil {
		handleError(ctx, w, err, "Failed to store document")
		return
	}

	logger.InfoContext(ctx, "document stored", "document_id", doc.ID, "folder_id", doc.FolderID)
	writeJSON(ctx, w, http.StatusCreated, toDocumentResponse(doc))
}

// Get returns one document.
//
// swagger:route GET /api/documents/{id} getDocument
//
// responses:
//
//	'200': DocumentResponse
//	'404': ErrorResponse
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.content.GetDocument(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to get document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Delete removes a document with its labels and QA pairs.
//
// swagger:route DELETE /api/documents/{id} deleteDocument
//
// responses:
//
//	'204': description: Document deleted
//	'404': ErrorResponse
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.content.DeleteDocument(ctx, chi.URLParam(r, "id")); err != nil {
		handleError(ctx, w, err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateEmbedding replaces a document's embedding.
//
// swagger:route PUT /api/documents/{id}/embedding updateDocumentEmbedding
//
// responses:
//
//	'200': DocumentResponse
//	'404': ErrorResponse
func (h *DocumentHandler) UpdateEmbedding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req UpdateEmbeddingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.content.UpdateDocumentEmbedding(ctx, id, req.Embedding); err != nil {
		handleError(ctx, w, err, "Failed to update embedding")
		return
	}

	doc, err := h.content.GetDocument(ctx, id)
	if err != nil {
		handleError(ctx, w, err, "Failed to get document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Find returns documents whose metadata key equals ?metadata_value, optionally
// scoped by ?folder_id. Values that parse as JSON booleans or numbers match
// those types; anything else matches as a string.
//
// swagger:route GET /api/documents findDocumentsByMetadata
//
// responses:
//
//	'200': []DocumentResponse
//	'400': ErrorResponse
func (h *DocumentHandler) Find(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	raw := q.Get("metadata_value")
	var value any = raw
	var decoded any
	if json.Unmarshal([]byte(raw), &decoded) == nil {
		switch decoded.(type) {
		case bool, float64:
			value = decoded
		}
	}

	docs, err := h.content.SearchDocumentsByMetadata(ctx, q.Get("metadata_key"), value, q.Get("folder_id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to search documents")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponses(docs))
}

// UpdateMetadata replaces a document's metadata.
//
// swagger:route PUT /api/documents/{id}/metadata updateDocumentMetadata
//
// responses:
//
//	'200': DocumentResponse
//	'404': ErrorResponse
func (h *DocumentHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req UpdateMetadataRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.content.UpdateDocumentMetadata(ctx, id, req.Metadata); err != nil {
		handleError(ctx, w, err, "Failed to update metadata")
		return
	}

	doc, err := h.content.GetDocument(ctx, id)
	if err != nil {
		handleError(ctx, w, err, "Failed to get document")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponse(doc))
}

// Labels lists a document's labels.
//
// swagger:route GET /api/documents/{id}/labels listDocumentLabels
//
// responses:
//
//	'200': []LabelResponse
//	'404': ErrorResponse
func (h *DocumentHandler) Labels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	labels, err := h.content.DocumentLabels(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to list labels")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toLabelResponses(labels))
}

// QA lists a document's QA pairs.
//
// swagger:route GET /api/documents/{id}/qa listDocumentQA
//
// responses:
//
//	'200': []QAResponse
//	'404': ErrorResponse
func (h *DocumentHandler) QA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pairs, err := h.content.DocumentQA(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to list qa pairs")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toQAResponses(pairs))
}

// AddLabel attaches a label to a document.
//
// swagger:route POST /api/documents/{id}/labels addDocumentLabel
//
// responses:
//
//	'201': LabelResponse
//	'400': ErrorResponse
func (h *DocumentHandler) AddLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateLabelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	label := &storage.Label{
		DocumentID: chi.URLParam(r, "id"),
		FolderID:   req.FolderID,
		Topic:      req.Topic,
		Tags:       req.Tags,
		Category:   req.Category,
		Confidence: storage.DefaultConfidence,
	}
	if req.Confidence != nil {
		label.Confidence = *req.Confidence
	}
	if err := h.content.AddLabel(ctx, label); err != nil {
		handleError(ctx, w, err, "Failed to add label")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toLabelResponse(label))
}

// AddQA attaches a QA pair to a document.
//
// swagger:route POST /api/documents/{id}/qa addDocumentQA
//
// responses:
//
//	'201': QAResponse
//	'400': ErrorResponse
func (h *DocumentHandler) AddQA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateQARequest
	if !decodeJSON(w, r, &req) {
		return
	}

	qa := &storage.QAPair{
		DocumentID:   chi.URLParam(r, "id"),
		FolderID:     req.FolderID,
		Question:     req.Question,
		Answer:       req.Answer,
		QuestionType: storage.QuestionType(req.QuestionType),
		Difficulty:   storage.Difficulty(req.Difficulty),
	}
	if err := h.content.AddQA(ctx, qa); err != nil {
		handleError(ctx, w, err, "Failed to add QA pair")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toQAResponse(qa))
}
