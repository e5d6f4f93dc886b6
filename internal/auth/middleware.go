package auth

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieName is the session cookie
const CookieName = "yatube_session"

// Session resolves the session cookie, if any, and stores the user in the
// request context. Invalid sessions are treated as anonymous.
func Session(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				svc.logger.Warn("Failed to authenticate session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// LoginURL returns the login page URL that comes back to next afterwards
func LoginURL(loginPath, next string) string {
	return loginPath + "?" + url.Values{"next": {next}}.Encode()
}

// RequireLogin redirects anonymous requests to the login page
func RequireLogin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFromContext(c.Request.Context()) == nil {
			c.Redirect(http.StatusFound, LoginURL(loginPath, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie stores token in the session cookie
func SetSessionCookie(c *gin.Context, svc *Service, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(svc.TTL().Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
