// Package web serves the HTML pages of the blog.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/blog"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/pkg/logging"
)

// LoginPath is where anonymous users are sent for protected pages
const LoginPath = "/auth/login/"

// Handler serves the blog pages
type Handler struct {
	blog         *blog.Service
	auth         *auth.Service
	images       *media.Storage
	cookieSecure bool
	logger       *zap.Logger
}

// NewHandler creates a new page handler
func NewHandler(blogSvc *blog.Service, authSvc *auth.Service, images *media.Storage, cookieSecure bool) *Handler {
	return &Handler{
		blog:         blogSvc,
		auth:         authSvc,
		images:       images,
		cookieSecure: cookieSecure,
		logger:       logging.WithComponent("web"),
	}
}

// SetupRoutes installs the templates, the session middleware and every page route
func (h *Handler) SetupRoutes(engine *gin.Engine) error {
	tmpl, err := parseTemplates(h.images)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	engine.StaticFS(strings.TrimSuffix(h.images.URLPrefix(), "/"), h.images.FileSystem())

	pages := engine.Group("/", auth.Session(h.auth))

	pages.GET("/", h.index)
	pages.GET("/group/:slug/", h.groupPosts)
	pages.GET("/profile/:username/", h.profile)
	pages.GET("/posts/:post_id/", h.postDetail)

	accounts := pages.Group("/auth")
	accounts.GET("/signup/", h.signupForm)
	accounts.POST("/signup/", h.signup)
	accounts.GET("/login/", h.loginForm)
	accounts.POST("/login/", h.login)
	accounts.GET("/logout/", h.logout)
	accounts.POST("/logout/", h.logout)

	private := pages.Group("/", auth.RequireLogin(LoginPath))
	private.GET("/create/", h.postCreateForm)
	private.POST("/create/", h.postCreate)
	private.GET("/posts/:post_id/edit/", h.postEditForm)
	private.POST("/posts/:post_id/edit/", h.postEdit)
	private.POST("/posts/:post_id/comment/", h.addComment)
	private.GET("/follow/", h.followIndex)
	private.GET("/profile/:username/follow/", h.profileFollow)
	private.GET("/profile/:username/unfollow/", h.profileUnfollow)

	engine.NoRoute(func(c *gin.Context) {
		h.renderError(c, http.StatusNotFound, "Page not found.")
	})

	return nil
}

func viewer(c *gin.Context) *models.User {
	return auth.UserFromContext(c.Request.Context())
}

// render executes a page template with the values every page uses
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["viewer"] = viewer(c)
	if _, ok := data["errors"]; !ok {
		data["errors"] = forms.Errors{}
	}
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	h.render(c, status, "error.html", gin.H{
		"title":   http.StatusText(status),
		"status":  status,
		"message": message,
	})
}

// fail maps an operation error onto a response
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		h.renderError(c, http.StatusNotFound, "Page not found.")
	case errors.Is(err, blog.ErrLoginRequired):
		c.Redirect(http.StatusFound, auth.LoginURL(LoginPath, c.Request.URL.RequestURI()))
	default:
		_ = c.Error(err)
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		h.renderError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}

// postID parses the :post_id path parameter, reporting a 404 when it is
// not a valid id
func (h *Handler) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil || id < 1 {
		h.renderError(c, http.StatusNotFound, "Page not found.")
		return 0, false
	}
	return id, true
}

// safeNext accepts only local absolute paths as a redirect target
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
