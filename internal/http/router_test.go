package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ragstore/internal/handlers"
	"ragstore/internal/handlers/mocks"
	"ragstore/internal/retrieval"
	"ragstore/internal/service"
	"ragstore/internal/storage"
)

func newTestDeps(t *testing.T) (*Deps, *mocks.MockHybridSearcher) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "router.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, storage.Migrate(db))

	folders := storage.NewFolderRepo(db)
	content := service.NewContentService(service.Repos{
		Folders:   folders,
		Documents: storage.NewDocumentRepo(db),
		Labels:    storage.NewLabelRepo(db),
		QA:        storage.NewQARepo(db),
	}, service.NewDefaultFolderResolver(folders), nil)

	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockHybridSearcher(ctrl)

	return &Deps{
		Content:  content,
		Ingester: service.NewIngester(content, nil, nil, nil),
		Searcher: searcher,
		HealthChecks: []handlers.HealthCheck{
			{Name: "database", Check: db.PingContext},
		},
	}, searcher
}

func TestNewRouter(t *testing.T) {
	deps, _ := newTestDeps(t)

	router := NewRouter(deps)

	require.NotNil(t, router)
}

func TestRouter_Routes(t *testing.T) {
	deps, searcher := newTestDeps(t)
	searcher.EXPECT().HybridSearch(gomock.Any(), gomock.Any()).Return(&retrieval.HybridResult{}, nil).AnyTimes()

	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "list root folders", method: http.MethodGet, path: "/api/folders", wantStatus: http.StatusOK},
		{name: "create folder", method: http.MethodPost, path: "/api/folders", body: `{"title":"Notes"}`, wantStatus: http.StatusCreated},
		{name: "create folder invalid body", method: http.MethodPost, path: "/api/folders", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "all folder stats", method: http.MethodGet, path: "/api/folders/stats", wantStatus: http.StatusOK},
		{name: "missing folder", method: http.MethodGet, path: "/api/folders/missing", wantStatus: http.StatusNotFound},
		{name: "missing folder documents", method: http.MethodGet, path: "/api/folders/missing/documents", wantStatus: http.StatusNotFound},
		{name: "missing document", method: http.MethodGet, path: "/api/documents/missing", wantStatus: http.StatusNotFound},
		{name: "missing document metadata", method: http.MethodPut, path: "/api/documents/missing/metadata", body: `{"metadata":{}}`, wantStatus: http.StatusNotFound},
		{name: "missing document labels", method: http.MethodGet, path: "/api/documents/missing/labels", wantStatus: http.StatusNotFound},
		{name: "missing document qa", method: http.MethodGet, path: "/api/documents/missing/qa", wantStatus: http.StatusNotFound},
		{name: "documents by metadata", method: http.MethodGet, path: "/api/documents?metadata_key=source&metadata_value=web", wantStatus: http.StatusOK},
		{name: "documents without metadata key", method: http.MethodGet, path: "/api/documents", wantStatus: http.StatusBadRequest},
		{name: "labels by category", method: http.MethodGet, path: "/api/labels?category=general", wantStatus: http.StatusOK},
		{name: "qa by difficulty", method: http.MethodGet, path: "/api/qa?difficulty=hard", wantStatus: http.StatusOK},
		{name: "qa by unknown difficulty", method: http.MethodGet, path: "/api/qa?difficulty=extreme", wantStatus: http.StatusBadRequest},
		{name: "search", method: http.MethodPost, path: "/api/search", body: `{"query":"go"}`, wantStatus: http.StatusOK},
		{name: "popular tags", method: http.MethodGet, path: "/api/tags/popular", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "ask disabled without answerer", method: http.MethodPost, path: "/api/ask", body: `{"question":"q"}`, wantStatus: http.StatusNotFound},
		{name: "search method not allowed", method: http.MethodGet, path: "/api/search", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, "%s %s body=%s", tt.method, tt.path, w.Body.String())
		})
	}
}

func TestRouter_UnhealthyDatabase(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.HealthChecks = []handlers.HealthCheck{
		{Name: "database", Check: func(context.Context) error { return errors.New("closed") }},
	}

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	deps, _ := newTestDeps(t)

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/folders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
