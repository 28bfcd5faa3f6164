package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dhanitra/dhanitra/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	svc := auth.NewService("admin@example.com", "hunter2")
	token, err := svc.Login("admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	handler := Auth(svc)(okHandler())

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "login passes through", method: http.MethodPost, path: "/api/login", wantStatus: http.StatusOK},
		{name: "health passes through", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "preflight passes through", method: http.MethodOptions, path: "/api/accounts", wantStatus: http.StatusOK},
		{name: "missing token rejected", method: http.MethodGet, path: "/api/accounts", wantStatus: http.StatusUnauthorized},
		{name: "bad token rejected", method: http.MethodGet, path: "/api/accounts", token: "bogus", wantStatus: http.StatusUnauthorized},
		{name: "live token accepted", method: http.MethodGet, path: "/api/accounts", token: token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := RequestID(zerolog.Nop())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "provided-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "provided-id" {
		t.Errorf("X-Request-ID = %q, want the caller-provided id", got)
	}
}
