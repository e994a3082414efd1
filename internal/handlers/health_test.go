package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatterbox-ai/internal/handlers"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		pingErr    error
		wantStatus int
		wantHealth string
	}{
		{
			name:       "healthy",
			method:     http.MethodGet,
			pingErr:    nil,
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
		},
		{
			name:       "completions unreachable",
			method:     http.MethodGet,
			pingErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
		},
		{
			name:       "method not allowed",
			method:     http.MethodPost,
			pingErr:    nil,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewHealthHandler(&stubPinger{err: tt.pingErr})

			req := httptest.NewRequest(tt.method, "/api/health", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantHealth == "" {
				return
			}
			var resp handlers.HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantHealth)
			}
			if tt.wantHealth == "unhealthy" && len(resp.Issues) == 0 {
				t.Error("expected issues to be reported")
			}
		})
	}
}
