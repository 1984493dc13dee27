package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/shared/server/middleware"
	"resume-platform/internal/shared/server/respond"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

type Handler struct {
	Svc      *Service
	Tokens   TokenIssuer
	TokenTTL time.Duration
}

func NewHandler(svc *Service, tokens TokenIssuer, ttl time.Duration) *Handler {
	return &Handler{Svc: svc, Tokens: tokens, TokenTTL: ttl}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/signup", h.signup)
	public.POST("/login", h.login)
	protected.GET("/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var req Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "email and password are required", err.Error())
		return
	}
	user, err := h.Svc.CreateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusBadRequest, "duplicate_email", "Email already registered", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}
	respond.Created(c, user)
}

func (h *Handler) login(c *gin.Context) {
	var req Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "email and password are required", err.Error())
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAuthFailure) {
			respond.Unauthorized(c, "auth_failed", "Incorrect email or password")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to authenticate", nil)
		return
	}
	token, err := h.Tokens.Issue(user.Email, h.TokenTTL)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	respond.OK(c, Token{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Unauthorized(c, "unauthorized", "User not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
