package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotationHandler(t *testing.T) {
	content := newTestContent(t)
	documents := NewDocumentHandler(content)
	handler := NewAnnotationHandler(content)
	docs := mustCreateFolder(t, content, "Docs", "")
	other := mustCreateFolder(t, content, "Other", "")
	first := mustInsertDocument(t, content, docs.ID, 0, "first")
	second := mustInsertDocument(t, content, other.ID, 0, "second")

	for _, id := range []string{first.ID, second.ID} {
		w := httptest.NewRecorder()
		documents.AddLabel(w, newRequest(http.MethodPost, "/", `{"topic":"t","category":"science"}`, "id", id))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := httptest.NewRecorder()
	documents.AddQA(w, newRequest(http.MethodPost, "/", `{"question":"How?","answer":"So.","difficulty":"hard"}`, "id", first.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("labels", func(t *testing.T) {
		tests := []struct {
			name       string
			target     string
			wantStatus int
			wantCount  int
		}{
			{name: "all folders", target: "/api/labels?category=science", wantStatus: http.StatusOK, wantCount: 2},
			{name: "one folder", target: "/api/labels?category=science&folder_id=" + other.ID, wantStatus: http.StatusOK, wantCount: 1},
			{name: "other category", target: "/api/labels?category=general", wantStatus: http.StatusOK},
			{name: "missing category", target: "/api/labels", wantStatus: http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				handler.Labels(w, newRequest(http.MethodGet, tt.target, ""))
				require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
				if tt.wantStatus == http.StatusOK {
					assert.Len(t, decodeBody[[]LabelResponse](t, w), tt.wantCount)
				}
			})
		}
	})

	t.Run("qa", func(t *testing.T) {
		tests := []struct {
			name       string
			target     string
			wantStatus int
			wantCount  int
		}{
			{name: "hard", target: "/api/qa?difficulty=hard", wantStatus: http.StatusOK, wantCount: 1},
			{name: "hard in other folder", target: "/api/qa?difficulty=hard&folder_id=" + other.ID, wantStatus: http.StatusOK},
			{name: "easy", target: "/api/qa?difficulty=easy", wantStatus: http.StatusOK},
			{name: "unknown difficulty", target: "/api/qa?difficulty=extreme", wantStatus: http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				handler.QA(w, newRequest(http.MethodGet, tt.target, ""))
				require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
				if tt.wantStatus == http.StatusOK {
					assert.Len(t, decodeBody[[]QAResponse](t, w), tt.wantCount)
				}
			})
		}
	})
}
