package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/blog"
	"github.com/yatube/yatube/internal/models"
)

// ProfilesAPI provides profile-related API methods
type ProfilesAPI struct {
	blog *blog.Service
}

// NewProfilesAPI creates a new profiles API
func NewProfilesAPI(blogSvc *blog.Service) *ProfilesAPI {
	return &ProfilesAPI{blog: blogSvc}
}

type getProfileParams struct {
	Username string `json:"username"`
	Observer string `json:"observer"`
}

// Get handles profiles.get. When observer is given the result tells
// whether they follow the profile; an unknown observer follows no one.
func (p *ProfilesAPI) Get(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var args getProfileParams
	if err := bindParams(params, &args); err != nil {
		return nil, err
	}
	if args.Username == "" {
		return nil, InvalidParams("missing required parameter: username")
	}

	ctx := c.Request.Context()

	var observer *models.User
	if args.Observer != "" {
		user, err := p.blog.User(ctx, args.Observer)
		if err != nil && !errors.Is(err, blog.ErrNotFound) {
			return nil, err
		}
		observer = user
	}

	view, err := p.blog.Profile(ctx, observer, args.Username, "")
	if err != nil {
		return nil, err
	}

	profileObj := map[string]interface{}{
		"id":          view.Author.ID,
		"username":    view.Author.Username,
		"name":        view.Author.DisplayName(),
		"posts_count": view.PostsCount,
		"followers":   view.Followers,
		"following":   view.FollowingCount,
		"joined":      view.Author.CreatedAt.UTC().Format(time.RFC3339),
	}
	if args.Observer != "" {
		profileObj["followed"] = view.Following
	}
	return profileObj, nil
}
