package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"ragstore/internal/service"
	"ragstore/internal/storage"
)

func newTestContent(t *testing.T) *service.ContentService {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, storage.Migrate(db))

	folders := storage.NewFolderRepo(db)
	return service.NewContentService(service.Repos{
		Folders:   folders,
		Documents: storage.NewDocumentRepo(db),
		Labels:    storage.NewLabelRepo(db),
		QA:        storage.NewQARepo(db),
	}, service.NewDefaultFolderResolver(folders), nil)
}

// newRequest builds a request with chi URL parameters given as name/value pairs.
func newRequest(method, target, body string, params ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func mustCreateFolder(t *testing.T, content *service.ContentService, title, parentID string) *storage.Folder {
	t.Helper()

	folder := &storage.Folder{Title: title, ParentID: parentID}
	require.NoError(t, content.CreateFolder(context.Background(), folder))
	return folder
}

func mustInsertDocument(t *testing.T, content *service.ContentService, folderID string, key int64, text string) *storage.Document {
	t.Helper()

	doc := &storage.Document{FolderID: folderID, SequenceKey: storage.IntKey(key), RawText: text}
	require.NoError(t, content.InsertDocument(context.Background(), doc))
	return doc
}
