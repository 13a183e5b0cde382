package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ragstore/internal/handlers/mocks"
	"ragstore/internal/retrieval"
	"ragstore/internal/service"
)

func TestAskHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		setup      func(m *mocks.MockAnswerer)
		wantStatus int
		check      func(t *testing.T, resp AskResponse)
	}{
		{
			name:   "answer with sources",
			method: http.MethodPost,
			body:   `{"question":"What is Go?","k":3}`,
			setup: func(m *mocks.MockAnswerer) {
				m.EXPECT().Answer(gomock.Any(), "What is Go?", 3).Return(&retrieval.Answer{
					Answer:      "A language.",
					Sources:     []retrieval.Source{{Kind: "document", DocumentID: "d1", FolderID: "f1", Preview: "Go is"}},
					ContextUsed: "Go is a language.",
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp AskResponse) {
				assert.Equal(t, "A language.", resp.Answer)
				require.Len(t, resp.Sources, 1)
				assert.Equal(t, "d1", resp.Sources[0].DocumentID)
				assert.False(t, resp.NoContext)
			},
		},
		{
			name:   "no context",
			method: http.MethodPost,
			body:   `{"question":"Anything?"}`,
			setup: func(m *mocks.MockAnswerer) {
				m.EXPECT().Answer(gomock.Any(), "Anything?", 0).Return(&retrieval.Answer{Answer: "General.", NoContext: true}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp AskResponse) {
				assert.True(t, resp.NoContext)
				assert.NotNil(t, resp.Sources)
				assert.Empty(t, resp.Sources)
			},
		},
		{
			name:   "k bounds enforced",
			method: http.MethodPost,
			body:   `{"question":"q","k":100}`,
			setup: func(m *mocks.MockAnswerer) {
				m.EXPECT().Answer(gomock.Any(), "q", maxAskK).Return(&retrieval.Answer{Answer: "a"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "blank question",
			method:     http.MethodPost,
			body:       `{"question":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "llm failure",
			method: http.MethodPost,
			body:   `{"question":"q"}`,
			setup: func(m *mocks.MockAnswerer) {
				m.EXPECT().Answer(gomock.Any(), "q", 0).
					Return(nil, &service.UpstreamError{Collaborator: "llm", Err: errors.New("connection refused")})
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			answerer := mocks.NewMockAnswerer(ctrl)
			if tt.setup != nil {
				tt.setup(answerer)
			}

			w := httptest.NewRecorder()
			NewAskHandler(answerer).ServeHTTP(w, newRequest(tt.method, "/api/ask", tt.body))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, decodeBody[AskResponse](t, w))
			}
		})
	}
}
