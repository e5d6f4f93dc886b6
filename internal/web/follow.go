package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func (h *Handler) profileFollow(c *gin.Context) {
	author, err := h.blog.Follow(c.Request.Context(), viewer(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

func (h *Handler) profileUnfollow(c *gin.Context) {
	author, err := h.blog.Unfollow(c.Request.Context(), viewer(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
