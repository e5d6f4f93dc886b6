package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/api/objects"
	"github.com/yatube/yatube/internal/blog"
	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/pkg/logging"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router sets up API routes
type Router struct {
	handler *JSONRPCHandler
	blog    *blog.Service
	images  *media.Storage
	checks  map[string]HealthCheck
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(blogSvc *blog.Service, images *media.Storage, checks map[string]HealthCheck) *Router {
	router := &Router{
		handler: NewJSONRPCHandler(),
		blog:    blogSvc,
		images:  images,
		checks:  checks,
		logger:  logging.WithComponent("api-router"),
	}

	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	engine.POST("/api/", r.handler.Handle)
}

// registerMethods registers all API methods
func (r *Router) registerMethods() {
	serializer := objects.NewSerializer(r.images)

	posts := NewPostsAPI(r.blog, serializer)
	r.handler.RegisterMethod("posts.list", posts.List)
	r.handler.RegisterMethod("posts.get", posts.Get)

	groups := NewGroupsAPI(r.blog, serializer)
	r.handler.RegisterMethod("groups.list", groups.List)
	r.handler.RegisterMethod("groups.get", groups.Get)

	profiles := NewProfilesAPI(r.blog)
	r.handler.RegisterMethod("profiles.get", profiles.Get)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range r.checks {
		if err := check(ctx); err != nil {
			r.logger.Warn("Health check failed", zap.String("check", name), zap.Error(err))
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "OK"
	}

	overall := "OK"
	if status != http.StatusOK {
		overall = "DEGRADED"
	}
	c.JSON(status, gin.H{
		"status":  overall,
		"service": "yatube",
		"checks":  results,
	})
}
