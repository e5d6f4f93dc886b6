package web

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/blog"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/models"
)

func (h *Handler) index(c *gin.Context) {
	page, err := h.blog.Index(c.Request.Context(), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{
		"title":    "Latest updates",
		"page_obj": page,
	})
}

func (h *Handler) groupPosts(c *gin.Context) {
	view, err := h.blog.GroupPosts(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "group_list.html", gin.H{
		"title":    view.Group.Title,
		"group":    view.Group,
		"page_obj": view.Posts,
	})
}

func (h *Handler) profile(c *gin.Context) {
	view, err := h.blog.Profile(c.Request.Context(), viewer(c), c.Param("username"), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "profile.html", gin.H{
		"title":           view.Author.DisplayName(),
		"author":          view.Author,
		"page_obj":        view.Posts,
		"posts_count":     view.PostsCount,
		"following":       view.Following,
		"followers":       view.Followers,
		"following_count": view.FollowingCount,
	})
}

func (h *Handler) postDetail(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	view, err := h.blog.PostDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "post_detail.html", gin.H{
		"title":      truncate(30, view.Post.Text),
		"post":       view.Post,
		"post_count": view.PostCount,
		"comments":   view.Comments,
		"form":       forms.CommentInput{},
	})
}

func (h *Handler) followIndex(c *gin.Context) {
	page, err := h.blog.Feed(c.Request.Context(), viewer(c), c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "follow.html", gin.H{
		"title":    "Subscriptions",
		"page_obj": page,
	})
}

// postForm renders the create/edit form
func (h *Handler) postForm(c *gin.Context, in forms.PostInput, errs forms.Errors, post *models.Post) {
	groups, err := h.blog.Groups(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	data := gin.H{
		"title":   "New post",
		"form":    in,
		"errors":  errs,
		"groups":  groups,
		"is_edit": post != nil,
	}
	if post != nil {
		data["title"] = "Edit post"
		data["pk"] = post.ID
		data["image"] = post.Image
	}
	h.render(c, http.StatusOK, "create_post.html", data)
}

// bindPost reads the post form and its optional image upload. The
// returned closer must be called once the upload has been consumed.
func bindPost(c *gin.Context) (forms.PostInput, io.Reader, func(), error) {
	var in forms.PostInput
	noop := func() {}

	if err := c.ShouldBind(&in); err != nil {
		return in, nil, noop, forms.Errors{
			forms.NonFieldErrors: {"The submitted form could not be read. Please try again."},
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, nil, noop, nil
		}
		return in, nil, noop, err
	}
	if fh.Size == 0 {
		return in, nil, noop, nil
	}

	var f multipart.File
	if f, err = fh.Open(); err != nil {
		return in, nil, noop, err
	}
	return in, f, func() { f.Close() }, nil
}

// submitErrors separates validation failures from real errors
func submitErrors(err error) (forms.Errors, bool) {
	var errs forms.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

func (h *Handler) postCreateForm(c *gin.Context) {
	h.postForm(c, forms.PostInput{}, nil, nil)
}

func (h *Handler) postCreate(c *gin.Context) {
	in, upload, done, err := bindPost(c)
	if err != nil {
		if errs, ok := submitErrors(err); ok {
			h.postForm(c, in, errs, nil)
			return
		}
		h.fail(c, err)
		return
	}
	defer done()

	user := viewer(c)
	if _, err := h.blog.CreatePost(c.Request.Context(), user, &in, upload); err != nil {
		if errs, ok := submitErrors(err); ok {
			h.postForm(c, in, errs, nil)
			return
		}
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func detailURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func (h *Handler) postEditForm(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.blog.PostForEdit(c.Request.Context(), viewer(c), id)
	if err != nil {
		if errors.Is(err, blog.ErrNotAuthor) {
			c.Redirect(http.StatusFound, detailURL(id))
			return
		}
		h.fail(c, err)
		return
	}

	in := forms.PostInput{Text: post.Text}
	if post.GroupID != nil {
		in.Group = strconv.FormatInt(*post.GroupID, 10)
	}
	h.postForm(c, in, nil, post)
}

func (h *Handler) postEdit(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.blog.PostForEdit(ctx, viewer(c), id)
	if err != nil {
		if errors.Is(err, blog.ErrNotAuthor) {
			c.Redirect(http.StatusFound, detailURL(id))
			return
		}
		h.fail(c, err)
		return
	}

	in, upload, done, err := bindPost(c)
	if err != nil {
		if errs, ok := submitErrors(err); ok {
			h.postForm(c, in, errs, post)
			return
		}
		h.fail(c, err)
		return
	}
	defer done()

	if _, err := h.blog.EditPost(ctx, viewer(c), id, &in, upload); err != nil {
		if errs, ok := submitErrors(err); ok {
			h.postForm(c, in, errs, post)
			return
		}
		if errors.Is(err, blog.ErrNotAuthor) {
			c.Redirect(http.StatusFound, detailURL(id))
			return
		}
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailURL(id))
}

func (h *Handler) addComment(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	var in forms.CommentInput
	// A malformed body is treated like an empty comment
	_ = c.ShouldBind(&in)

	if _, err := h.blog.AddComment(c.Request.Context(), viewer(c), id, &in); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailURL(id))
}
