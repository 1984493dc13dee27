package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-platform/internal/services/health"
	"resume-platform/internal/shared/metrics"
	"resume-platform/internal/shared/server/middleware"
	"resume-platform/internal/shared/server/respond"
)

// AuthRoutes registers the /auth endpoints. Public routes are rate limited;
// protected routes require a bearer token.
type AuthRoutes interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// ResourceRoutes registers bearer-protected routes under a prefix.
type ResourceRoutes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter wires together.
type RouterDeps struct {
	CORSAllowOrigin []string
	Verifier        middleware.TokenVerifier
	Resolve         middleware.SubjectResolver
	Health          *health.Service
	AuthRateLimit   middleware.RateLimitRule
	Limiter         *middleware.RateLimiter
	Auth            AuthRoutes
	Resumes         ResourceRoutes
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "Resume Platform API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		payload, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, payload)
			return
		}
		respond.OK(c, payload)
	})
	r.GET("/metrics", metrics.Handler())

	requireAuth := middleware.Auth(deps.Verifier, deps.Resolve)

	if deps.Auth != nil {
		public := r.Group("/auth", middleware.RateLimit(deps.Limiter, middleware.AuthRateLimitGroup, deps.AuthRateLimit))
		protected := r.Group("/auth", requireAuth)
		deps.Auth.RegisterRoutes(public, protected)
	}
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(r.Group("/resume", requireAuth))
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Not Found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
