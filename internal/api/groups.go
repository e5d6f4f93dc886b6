package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/api/objects"
	"github.com/yatube/yatube/internal/blog"
)

// GroupsAPI provides group-related API methods
type GroupsAPI struct {
	blog       *blog.Service
	serializer *objects.Serializer
}

// NewGroupsAPI creates a new groups API
func NewGroupsAPI(blogSvc *blog.Service, serializer *objects.Serializer) *GroupsAPI {
	return &GroupsAPI{blog: blogSvc, serializer: serializer}
}

// List handles groups.list
func (g *GroupsAPI) List(c *gin.Context, params json.RawMessage) (interface{}, error) {
	groups, err := g.blog.Groups(c.Request.Context())
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(groups))
	for _, group := range groups {
		result = append(result, objects.Group(group))
	}
	return result, nil
}

type getGroupParams struct {
	Slug string `json:"slug"`
	Page *int   `json:"page"`
}

// Get handles groups.get
func (g *GroupsAPI) Get(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var args getGroupParams
	if err := bindParams(params, &args); err != nil {
		return nil, err
	}
	if args.Slug == "" {
		return nil, InvalidParams("missing required parameter: slug")
	}

	view, err := g.blog.GroupPosts(c.Request.Context(), args.Slug, pageParam(args.Page))
	if err != nil {
		return nil, err
	}

	groupObj := objects.Group(view.Group)
	groupObj["posts"] = g.serializer.PostPage(view.Posts)
	return groupObj, nil
}
