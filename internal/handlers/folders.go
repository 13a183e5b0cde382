package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ragstore/internal/contextutil"
	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// DefaultDocumentPage is the page size for folder document listings.
const DefaultDocumentPage = 50

// FolderHandler handles HTTP requests for folders and their contents.
type FolderHandler struct {
	content  *service.ContentService
	ingester *service.Ingester
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(content *service.ContentService, ingester *service.Ingester) *FolderHandler {
	return &FolderHandler{
		content:  content,
		ingester: ingester,
	}
}

// CreateFolderRequest represents the HTTP request payload for creating a folder.
//
// swagger:model CreateFolderRequest
type CreateFolderRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	FolderType    string         `json:"folder_type,omitempty"`
	ParentID      string         `json:"parent_id,omitempty"`
	CoverImageURL string         `json:"cover_image_url,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// DeleteFolderResponse reports what a folder delete removed.
//
// swagger:model DeleteFolderResponse
type DeleteFolderResponse struct {
	Deleted     bool     `json:"deleted"`
	FolderIDs   []string `json:"folder_ids"`
	DocumentIDs []string `json:"document_ids"`
}

// IngestPassage is one passage of an ingest request.
type IngestPassage struct {
	Text        string               `json:"text"`
	SequenceKey *storage.SequenceKey `json:"sequence_key,omitempty"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
}

// IngestRequest represents the HTTP request payload for ingesting passages into a folder.
//
// swagger:model IngestRequest
type IngestRequest struct {
	Passages     []IngestPassage `json:"passages"`
	QAPerPassage int             `json:"qa_per_passage,omitempty"`
}

// Create creates a folder.
//
// swagger:route POST /api/folders createFolder
//
// responses:
//
//	'201': FolderResponse
//	'400': ErrorResponse
//	'500': ErrorResponse
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CreateFolderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	folder := &storage.Folder{
		Title:         req.Title,
		Description:   req.Description,
		FolderType:    req.FolderType,
		ParentID:      req.ParentID,
		CoverImageURL: req.CoverImageURL,
		Metadata:      req.Metadata,
	}
	if err := h.content.CreateFolder(ctx, folder); err != nil {
		handleError(ctx, w, err, "Failed to create folder")
		return
	}

	logger.InfoContext(ctx, "folder created", "folder_id", folder.ID, "title", folder.Title)
	writeJSON(ctx, w, http.StatusCreated, toFolderResponse(folder))
}

// List lists the children of ?parent_id, or the root folders when it is absent.
//
// swagger:route GET /api/folders listFolders
//
// responses:
//
//	'200': []FolderResponse
//	'500': ErrorResponse
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folders, err := h.content.ListFolders(ctx, r.URL.Query().Get("parent_id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to list folders")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toFolderResponses(folders))
}

// Get returns one folder and records the access.
//
// swagger:route GET /api/folders/{id} getFolder
//
// responses:
//
//	'200': FolderResponse
//	'404': ErrorResponse
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folder, err := h.content.GetFolder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to get folder")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toFolderResponse(folder))
}

// Delete deletes a folder. Without ?recursive=true a folder that still has
// content is left alone and 409 is returned.
//
// swagger:route DELETE /api/folders/{id} deleteFolder
//
// responses:
//
//	'200': DeleteFolderResponse
//	'404': ErrorResponse
//	'409': ErrorResponse
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	recursive := false
	if raw := r.URL.Query().Get("recursive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "recursive must be a boolean")
			return
		}
		recursive = parsed
	}

	result, err := h.content.DeleteFolder(ctx, id, recursive)
	if err != nil {
		handleError(ctx, w, err, "Failed to delete folder")
		return
	}
	if !result.Deleted {
		handleError(ctx, w, fmt.Errorf("%w: folder %s has documents or child folders", storage.ErrNotEmpty, id), "Failed to delete folder")
		return
	}

	writeJSON(ctx, w, http.StatusOK, DeleteFolderResponse{
		Deleted:     true,
		FolderIDs:   nonNil(result.FolderIDs),
		DocumentIDs: nonNil(result.DocumentIDs),
	})
}

// Documents lists a folder's documents in sequence order, up to ?limit.
//
// swagger:route GET /api/folders/{id}/documents listFolderDocuments
//
// responses:
//
//	'200': []DocumentResponse
//	'404': ErrorResponse
func (h *FolderHandler) Documents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := intQuery(r, "limit", DefaultDocumentPage)
	if err != nil {
		handleError(ctx, w, err, "Invalid limit")
		return
	}

	docs, err := h.content.ListDocuments(ctx, chi.URLParam(r, "id"), limit)
	if err != nil {
		handleError(ctx, w, err, "Failed to list documents")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toDocumentResponses(docs))
}

// Chunks lists a folder's documents in the flat chunk shape.
//
// swagger:route GET /api/folders/{id}/chunks listFolderChunks
//
// responses:
//
//	'200': []LegacyChunk
//	'404': ErrorResponse
func (h *FolderHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := intQuery(r, "limit", DefaultDocumentPage)
	if err != nil {
		handleError(ctx, w, err, "Invalid limit")
		return
	}

	chunks, err := h.content.LegacyChunks(ctx, chi.URLParam(r, "id"), limit)
	if err != nil {
		handleError(ctx, w, err, "Failed to list chunks")
		return
	}
	writeJSON(ctx, w, http.StatusOK, chunks)
}

// Stats summarizes one folder.
//
// swagger:route GET /api/folders/{id}/stats folderStats
//
// responses:
//
//	'200': FolderStatsResponse
//	'404': ErrorResponse
func (h *FolderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.content.FolderStatistics(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(ctx, w, err, "Failed to get folder statistics")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toStatsResponse(stats))
}

// AllStats summarizes every folder.
//
// swagger:route GET /api/folders/stats allFolderStats
//
// responses:
//
//	'200': []FolderStatsResponse
//	'500': ErrorResponse
func (h *FolderHandler) AllStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.content.AllFolderStatistics(ctx)
	if err != nil {
		handleError(ctx, w, err, "Failed to get folder statistics")
		return
	}
	out := make([]FolderStatsResponse, 0, len(all))
	for _, s := range all {
		out = append(out, toStatsResponse(s))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

// Ingest stores passages in a folder, embedding and annotating each one.
// The folder ID "default" targets the default folder.
//
// swagger:route POST /api/folders/{id}/ingest ingestPassages
//
// responses:
//
//	'200': IngestResult
//	'400': ErrorResponse
func (h *FolderHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.ingester == nil {
		writeError(w, http.StatusServiceUnavailable, "Ingest is not configured")
		return
	}

	var req IngestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Passages) == 0 {
		writeError(w, http.StatusBadRequest, "At least one passage is required")
		return
	}
	if req.QAPerPassage < 0 {
		writeError(w, http.StatusBadRequest, "qa_per_passage must not be negative")
		return
	}

	folderID := chi.URLParam(r, "id")
	if folderID == "default" {
		folderID = ""
	}

	passages := make([]service.Passage, 0, len(req.Passages))
	for _, p := range req.Passages {
		passages = append(passages, service.Passage{
			Text:        p.Text,
			SequenceKey: p.SequenceKey,
			Metadata:    p.Metadata,
		})
	}

	result, err := h.ingester.Ingest(ctx, service.IngestRequest{
		FolderID:     folderID,
		Passages:     passages,
		QAPerPassage: req.QAPerPassage,
	})
	if err != nil {
		handleError(ctx, w, err, "Failed to ingest passages")
		return
	}

	logger.InfoContext(ctx, "passages ingested", "folder_id", result.FolderID, "documents", result.Documents)
	writeJSON(ctx, w, http.StatusOK, result)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
