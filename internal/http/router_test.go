package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"chatterbox-ai/internal/service"
	"chatterbox-ai/internal/service/mocks"
)

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockChatService := mocks.NewMockChatService(ctrl)

	deps := &Deps{
		ChatService: mockChatService,
		Completions: okPinger{},
	}
	return NewRouter(deps)
}

func TestNewRouter(t *testing.T) {
	if newTestRouter(t) == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET /api/health exists",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/templates exists",
			method:     http.MethodGet,
			path:       "/api/templates",
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET /api/presets exists",
			method:     http.MethodGet,
			path:       "/api/presets",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/sessions exists",
			method:     http.MethodPost,
			path:       "/api/sessions",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "GET /api/sessions method not allowed",
			method:     http.MethodGet,
			path:       "/api/sessions",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockChatService := mocks.NewMockChatService(ctrl)
			mockChatService.EXPECT().
				CreateSession(gomock.Any(), gomock.Any()).
				Return(service.Session{ID: "id"}, nil).
				AnyTimes()

			router := NewRouter(&Deps{ChatService: mockChatService, Completions: okPinger{}})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_SessionScopedRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockChatService := mocks.NewMockChatService(ctrl)
	mockChatService.EXPECT().
		History(gomock.Any(), "abc").
		Return(nil, nil)

	router := NewRouter(&Deps{ChatService: mockChatService, Completions: okPinger{}})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/abc/history", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Router GET /api/sessions/abc/history status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
