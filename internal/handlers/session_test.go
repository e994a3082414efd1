package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"chatterbox-ai/internal/chatbot"
	"chatterbox-ai/internal/handlers"
	"chatterbox-ai/internal/service"
	"chatterbox-ai/internal/service/mocks"
)

func TestSessionHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(svc *mocks.MockChatService)
		wantStatus int
	}{
		{
			name: "create with preset",
			body: `{"preset":"creative"}`,
			mockSetup: func(svc *mocks.MockChatService) {
				svc.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req service.CreateSessionRequest) (service.Session, error) {
						if req.Preset != "creative" {
							t.Errorf("preset = %q, want creative", req.Preset)
						}
						return service.Session{ID: "new-id", CreatedAt: time.Now()}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "create with overrides",
			body: `{"overrides":{"temperature":0.2,"streaming":true}}`,
			mockSetup: func(svc *mocks.MockChatService) {
				svc.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req service.CreateSessionRequest) (service.Session, error) {
						if req.Overrides.Temperature == nil || *req.Overrides.Temperature != 0.2 {
							t.Errorf("temperature override = %v, want 0.2", req.Overrides.Temperature)
						}
						if req.Overrides.Streaming == nil || !*req.Overrides.Streaming {
							t.Errorf("streaming override = %v, want true", req.Overrides.Streaming)
						}
						if req.Overrides.Model != nil {
							t.Errorf("model override = %v, want unset", req.Overrides.Model)
						}
						return service.Session{ID: "new-id", CreatedAt: time.Now()}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "unknown preset",
			body: `{"preset":"wild"}`,
			mockSetup: func(svc *mocks.MockChatService) {
				svc.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					Return(service.Session{}, &service.ValidationError{Field: "preset", Message: "unknown preset name"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       "{not json",
			mockSetup:  func(svc *mocks.MockChatService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockChatService(ctrl)
			tt.mockSetup(svc)
			handler := handlers.NewSessionHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				var resp handlers.SessionResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "new-id" {
					t.Errorf("id = %q, want new-id", resp.ID)
				}
			}
		})
	}
}

func TestSessionHandler_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockChatService(ctrl)
	svc.EXPECT().
		History(gomock.Any(), "session-1").
		Return([]chatbot.Message{
			{Role: chatbot.RoleSystem, Content: "You are terse.", CreatedAt: time.Now()},
			{Role: chatbot.RoleUser, Content: "Hi", CreatedAt: time.Now()},
			{Role: chatbot.RoleAssistant, Content: "Hello.", CreatedAt: time.Now()},
		}, nil)
	handler := handlers.NewSessionHandler(svc)

	req := newChatRequest(t, http.MethodGet, "/api/sessions/session-1/history", "", "session-1")
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp handlers.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Messages) != 3 {
		t.Fatalf("messages length = %d, want 3", len(resp.Messages))
	}
	wantRoles := []string{"system", "user", "assistant"}
	for i, m := range resp.Messages {
		if m.Role != wantRoles[i] {
			t.Errorf("messages[%d].Role = %q, want %q", i, m.Role, wantRoles[i])
		}
	}
}

func TestSessionHandler_HistoryNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockChatService(ctrl)
	svc.EXPECT().
		History(gomock.Any(), "missing").
		Return(nil, service.ErrSessionNotFound)
	handler := handlers.NewSessionHandler(svc)

	req := newChatRequest(t, http.MethodGet, "/api/sessions/missing/history", "", "missing")
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionHandler_ClearHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockChatService(ctrl)
	svc.EXPECT().
		ClearHistory(gomock.Any(), "session-1").
		Return(nil)
	handler := handlers.NewSessionHandler(svc)

	req := newChatRequest(t, http.MethodDelete, "/api/sessions/session-1/history", "", "session-1")
	rec := httptest.NewRecorder()

	handler.ClearHistory(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockChatService(ctrl)
	svc.EXPECT().
		DeleteSession(gomock.Any(), "session-1").
		Return(nil)
	handler := handlers.NewSessionHandler(svc)

	req := newChatRequest(t, http.MethodDelete, "/api/sessions/session-1", "", "session-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
