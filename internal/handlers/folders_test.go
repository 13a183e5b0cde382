package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragstore/internal/service"
	"ragstore/internal/storage"
)

func TestFolderHandler_Create(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, nil)
	parent := mustCreateFolder(t, content, "Parent", "")

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "root folder", body: `{"title":"Notes","folder_type":"project"}`, wantStatus: http.StatusCreated},
		{name: "child folder", body: `{"title":"Child","parent_id":"` + parent.ID + `"}`, wantStatus: http.StatusCreated},
		{name: "missing title", body: `{"description":"no title"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown parent", body: `{"title":"Orphan","parent_id":"missing"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid json", body: `{"title":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Create(w, newRequest(http.MethodPost, "/api/folders", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusCreated {
				resp := decodeBody[FolderResponse](t, w)
				assert.NotEmpty(t, resp.ID)
				assert.NotEmpty(t, resp.FolderType)
			}
		})
	}
}

func TestFolderHandler_ListAndGet(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, nil)

	root := mustCreateFolder(t, content, "Root", "")
	child := mustCreateFolder(t, content, "Child", root.ID)

	w := httptest.NewRecorder()
	handler.List(w, newRequest(http.MethodGet, "/api/folders", ""))
	require.Equal(t, http.StatusOK, w.Code)
	roots := decodeBody[[]FolderResponse](t, w)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	w = httptest.NewRecorder()
	handler.List(w, newRequest(http.MethodGet, "/api/folders?parent_id="+root.ID, ""))
	require.Equal(t, http.StatusOK, w.Code)
	children := decodeBody[[]FolderResponse](t, w)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)
	assert.Equal(t, root.ID, children[0].ParentID)

	w = httptest.NewRecorder()
	handler.Get(w, newRequest(http.MethodGet, "/api/folders/"+child.ID, "", "id", child.ID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Child", decodeBody[FolderResponse](t, w).Title)

	w = httptest.NewRecorder()
	handler.Get(w, newRequest(http.MethodGet, "/api/folders/missing", "", "id", "missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFolderHandler_Delete(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, nil)

	busy := mustCreateFolder(t, content, "Busy", "")
	nested := mustCreateFolder(t, content, "Nested", busy.ID)
	doc := mustInsertDocument(t, content, nested.ID, 0, "text")
	empty := mustCreateFolder(t, content, "Empty", "")

	tests := []struct {
		name       string
		id         string
		query      string
		wantStatus int
	}{
		{name: "blocked by content", id: busy.ID, wantStatus: http.StatusConflict},
		{name: "bad recursive flag", id: busy.ID, query: "?recursive=maybe", wantStatus: http.StatusBadRequest},
		{name: "empty folder", id: empty.ID, wantStatus: http.StatusOK},
		{name: "missing folder", id: "missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Delete(w, newRequest(http.MethodDelete, "/api/folders/"+tt.id+tt.query, "", "id", tt.id))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	w := httptest.NewRecorder()
	handler.Delete(w, newRequest(http.MethodDelete, "/api/folders/"+busy.ID+"?recursive=true", "", "id", busy.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[DeleteFolderResponse](t, w)
	assert.True(t, resp.Deleted)
	assert.Equal(t, []string{nested.ID, busy.ID}, resp.FolderIDs)
	assert.Equal(t, []string{doc.ID}, resp.DocumentIDs)

	_, err := content.GetDocument(context.Background(), doc.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFolderHandler_DocumentsAndChunks(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, nil)

	folder := mustCreateFolder(t, content, "Docs", "")
	for i, text := range []string{"zero", "one", "two"} {
		mustInsertDocument(t, content, folder.ID, int64(i), text)
	}

	w := httptest.NewRecorder()
	handler.Documents(w, newRequest(http.MethodGet, "/documents?limit=2", "", "id", folder.ID))
	require.Equal(t, http.StatusOK, w.Code)
	docs := decodeBody[[]DocumentResponse](t, w)
	require.Len(t, docs, 2)
	assert.Equal(t, "zero", docs[0].RawText)
	assert.Equal(t, "one", docs[1].RawText)

	w = httptest.NewRecorder()
	handler.Documents(w, newRequest(http.MethodGet, "/documents?limit=x", "", "id", folder.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.Documents(w, newRequest(http.MethodGet, "/documents", "", "id", "missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.Chunks(w, newRequest(http.MethodGet, "/chunks", "", "id", folder.ID))
	require.Equal(t, http.StatusOK, w.Code)
	chunks := decodeBody[[]storage.LegacyChunk](t, w)
	require.Len(t, chunks, 3)
	assert.Equal(t, "0", chunks[0].ChunkID)
	assert.Equal(t, folder.ID, chunks[0].Metadata["folder_id"])
}

func TestFolderHandler_Stats(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, nil)
	ctx := context.Background()

	folder := mustCreateFolder(t, content, "Docs", "")
	doc := mustInsertDocument(t, content, folder.ID, 0, "text")
	require.NoError(t, content.AddLabel(ctx, &storage.Label{DocumentID: doc.ID, Topic: "t"}))
	require.NoError(t, content.AddQA(ctx, &storage.QAPair{DocumentID: doc.ID, Question: "q", Answer: "a"}))
	mustCreateFolder(t, content, "Empty", "")

	w := httptest.NewRecorder()
	handler.Stats(w, newRequest(http.MethodGet, "/stats", "", "id", folder.ID))
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody[FolderStatsResponse](t, w)
	assert.Equal(t, 1, stats.DocumentCount)
	assert.Equal(t, 1, stats.LabelCount)
	assert.Equal(t, 1, stats.QACount)
	require.Len(t, stats.RecentDocuments, 1)
	assert.Equal(t, doc.ID, stats.RecentDocuments[0].ID)

	w = httptest.NewRecorder()
	handler.Stats(w, newRequest(http.MethodGet, "/stats", "", "id", "missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.AllStats(w, newRequest(http.MethodGet, "/stats", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]FolderStatsResponse](t, w), 2)
}

func TestFolderHandler_Ingest(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, service.NewIngester(content, nil, nil, nil))
	folder := mustCreateFolder(t, content, "Docs", "")

	w := httptest.NewRecorder()
	body := `{"passages":[{"text":"first"},{"text":"  "},{"text":"third","sequence_key":"c"}]}`
	handler.Ingest(w, newRequest(http.MethodPost, "/ingest", body, "id", folder.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	result := decodeBody[service.IngestResult](t, w)
	assert.Equal(t, folder.ID, result.FolderID)
	assert.Len(t, result.DocumentIDs, 2)
	assert.Equal(t, service.Tally{Attempted: 3, Succeeded: 2, Skipped: 1}, result.Documents)

	docs, err := content.ListDocuments(context.Background(), folder.ID, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, storage.IntKey(0), docs[0].SequenceKey)
	assert.Equal(t, storage.TextKey("c"), docs[1].SequenceKey)
}

func TestFolderHandler_IngestDefaultFolder(t *testing.T) {
	content := newTestContent(t)
	handler := NewFolderHandler(content, service.NewIngester(content, nil, nil, nil))

	w := httptest.NewRecorder()
	handler.Ingest(w, newRequest(http.MethodPost, "/ingest", `{"passages":[{"text":"hello"}]}`, "id", "default"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	defaultID, err := content.DefaultFolder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultID, decodeBody[service.IngestResult](t, w).FolderID)
}

func TestFolderHandler_IngestRejects(t *testing.T) {
	content := newTestContent(t)
	folder := mustCreateFolder(t, content, "Docs", "")

	tests := []struct {
		name       string
		ingester   *service.Ingester
		id         string
		body       string
		wantStatus int
	}{
		{name: "not configured", id: folder.ID, body: `{"passages":[{"text":"x"}]}`, wantStatus: http.StatusServiceUnavailable},
		{name: "no passages", ingester: service.NewIngester(content, nil, nil, nil), id: folder.ID, body: `{"passages":[]}`, wantStatus: http.StatusBadRequest},
		{name: "negative qa count", ingester: service.NewIngester(content, nil, nil, nil), id: folder.ID, body: `{"passages":[{"text":"x"}],"qa_per_passage":-1}`, wantStatus: http.StatusBadRequest},
		{name: "unknown folder", ingester: service.NewIngester(content, nil, nil, nil), id: "missing", body: `{"passages":[{"text":"x"}]}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewFolderHandler(content, tt.ingester)
			w := httptest.NewRecorder()
			handler.Ingest(w, newRequest(http.MethodPost, "/ingest", tt.body, "id", tt.id))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
