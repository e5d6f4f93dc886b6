package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/models"
)

func (h *Handler) signupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{
		"title": "Sign up",
		"form":  forms.SignupInput{},
	})
}

func (h *Handler) signup(c *gin.Context) {
	var in forms.SignupInput
	_ = c.ShouldBind(&in)

	user, err := h.auth.Signup(c.Request.Context(), &in)
	if err != nil {
		if errs, ok := submitErrors(err); ok {
			in.Password, in.PasswordConfirm = "", ""
			h.render(c, http.StatusOK, "signup.html", gin.H{
				"title":  "Sign up",
				"form":   in,
				"errors": errs,
			})
			return
		}
		h.fail(c, err)
		return
	}

	h.startSession(c, user, "/")
}

func (h *Handler) loginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
		"form":  forms.LoginInput{},
		"next":  c.Query("next"),
	})
}

func (h *Handler) login(c *gin.Context) {
	var in forms.LoginInput
	_ = c.ShouldBind(&in)
	next := c.PostForm("next")

	user, err := h.auth.Login(c.Request.Context(), &in)
	if err != nil {
		errs, ok := submitErrors(err)
		if !ok && errors.Is(err, auth.ErrInvalidCredentials) {
			errs, ok = forms.Errors{}, true
			errs.Add(forms.NonFieldErrors, "Please enter a correct username and password.")
		}
		if !ok {
			h.fail(c, err)
			return
		}
		in.Password = ""
		h.render(c, http.StatusOK, "login.html", gin.H{
			"title":  "Log in",
			"form":   in,
			"errors": errs,
			"next":   next,
		})
		return
	}

	h.startSession(c, user, safeNext(next))
}

func (h *Handler) startSession(c *gin.Context, user *models.User, next string) {
	token, err := h.auth.IssueToken(user)
	if err != nil {
		h.fail(c, err)
		return
	}
	auth.SetSessionCookie(c, h.auth, token, h.cookieSecure)
	c.Redirect(http.StatusFound, next)
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("Failed to revoke session", zap.Error(err))
		}
	}
	auth.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}
