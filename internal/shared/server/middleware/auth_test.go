package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/shared/telemetry"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if sub, ok := s[token]; ok {
		return sub, nil
	}
	return "", errors.New("invalid token")
}

func resolveKnown(ctx context.Context, subject string) (string, bool, error) {
	switch subject {
	case "jane@example.com":
		return "user-1", true, nil
	case "broken@example.com":
		return "", false, errors.New("store down")
	default:
		return "", false, nil
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{"good": "jane@example.com", "ghost": "gone@example.com", "broken": "broken@example.com"}
	router := gin.New()
	router.Use(Auth(verifier, resolveKnown))
	router.GET("/auth/me", func(c *gin.Context) {
		keys := make([]string, 0, len(c.Keys))
		for k := range c.Keys {
			keys = append(keys, k)
		}
		c.JSON(http.StatusOK, gin.H{"id": UserIDFromContext(c), "keys": keys})
	})
	router.OPTIONS("/auth/me", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestAuthStoresOnlyResolvedUserID(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		ID   string   `json:"id"`
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != "user-1" {
		t.Fatalf("expected resolved id user-1, got %q", body.ID)
	}
	if len(body.Keys) != 1 || body.Keys[0] != userIDKey {
		t.Fatalf("expected only %q in context, got %v", userIDKey, body.Keys)
	}
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodOptions, "/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthStatuses(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	router := newAuthRouter()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"unknown user", "Bearer ghost", http.StatusUnauthorized},
		{"resolver error", "Bearer broken", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.Code)
		}
		if tc.status == http.StatusUnauthorized && resp.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Fatalf("%s: expected WWW-Authenticate header", tc.name)
		}
	}
}
