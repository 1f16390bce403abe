package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"backhouse-backend/internal/models"
)

func TestJWTMiddleware_ValidToken(t *testing.T) {
	auth := NewJWTAuth("test-secret", nil)
	userID := uuid.New()

	token, err := auth.GenerateAccessToken(userID, "manager@example.com", models.RoleManager)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	var gotUserID uuid.UUID
	var gotRole models.Role
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotRole = GetRole(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	if gotUserID != userID {
		t.Errorf("user ID = %s, want %s", gotUserID, userID)
	}
	if gotRole != models.RoleManager {
		t.Errorf("role = %q, want %q", gotRole, models.RoleManager)
	}
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	auth := NewJWTAuth("test-secret", nil)
	other := NewJWTAuth("different-secret", nil)

	wrongKeyToken, _ := other.GenerateAccessToken(uuid.New(), "x@example.com", models.RoleAdmin)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + wrongKeyToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gate := RequireRole(models.Role.CanManageUsers)

	run := func(role models.Role) int {
		handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		auth := NewJWTAuth("test-secret", nil)
		token, _ := auth.GenerateAccessToken(uuid.New(), "x@example.com", role)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		auth.Middleware(handler).ServeHTTP(rr, req)
		return rr.Code
	}

	if code := run(models.RoleAdmin); code != http.StatusNoContent {
		t.Errorf("admin status = %d, want 204", code)
	}
	if code := run(models.RoleManager); code != http.StatusForbidden {
		t.Errorf("manager status = %d, want 403", code)
	}
	if code := run(models.RoleTeamLead); code != http.StatusForbidden {
		t.Errorf("team lead status = %d, want 403", code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("request 4: status = %d, want 429", rr.Code)
	}

	// A different IP is unaffected.
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("other IP: status = %d, want 200", rr.Code)
	}
}
