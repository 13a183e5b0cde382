package handlers

import (
	"net/http"

	"ragstore/internal/service"
	"ragstore/internal/storage"
)

// TagHandler handles HTTP requests for tag statistics.
type TagHandler struct {
	content *service.ContentService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(content *service.ContentService) *TagHandler {
	return &TagHandler{content: content}
}

// ServeHTTP returns the most used tags, optionally scoped by ?folder_id, up to ?limit.
//
// swagger:route GET /api/tags/popular popularTags
//
// responses:
//
//	'200': []TagCount
//	'400': ErrorResponse
func (h *TagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := intQuery(r, "limit", storage.DefaultPopularTags)
	if err != nil {
		handleError(ctx, w, err, "Invalid limit")
		return
	}

	tags, err := h.content.PopularTags(ctx, r.URL.Query().Get("folder_id"), limit)
	if err != nil {
		handleError(ctx, w, err, "Failed to get popular tags")
		return
	}
	if tags == nil {
		tags = []storage.TagCount{}
	}
	writeJSON(ctx, w, http.StatusOK, tags)
}
