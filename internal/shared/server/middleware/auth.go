package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/shared/server/respond"
)

const userIDKey = "userId"

// TokenVerifier returns the subject of a valid bearer token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// SubjectResolver maps a token subject to a user id; ok is false when no such user exists.
type SubjectResolver func(ctx context.Context, subject string) (userID string, ok bool, err error)

// Auth requires a valid bearer token whose subject resolves to an existing user.
func Auth(verifier TokenVerifier, resolve SubjectResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || verifier == nil {
			respond.Unauthorized(c, "unauthorized", "Not authenticated")
			return
		}

		subject, err := verifier.Verify(token)
		if err != nil {
			respond.Unauthorized(c, "unauthorized", "Invalid authentication credentials")
			return
		}

		userID := subject
		if resolve != nil {
			id, found, err := resolve(c.Request.Context(), subject)
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
				return
			}
			if !found {
				respond.Unauthorized(c, "unauthorized", "User not found")
				return
			}
			userID = id
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
