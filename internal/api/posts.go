package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/api/objects"
	"github.com/yatube/yatube/internal/blog"
)

// PostsAPI provides post-related API methods
type PostsAPI struct {
	blog       *blog.Service
	serializer *objects.Serializer
}

// NewPostsAPI creates a new posts API
func NewPostsAPI(blogSvc *blog.Service, serializer *objects.Serializer) *PostsAPI {
	return &PostsAPI{blog: blogSvc, serializer: serializer}
}

type listPostsParams struct {
	Page   *int   `json:"page"`
	Group  string `json:"group"`
	Author string `json:"author"`
}

// List handles posts.list
func (p *PostsAPI) List(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var args listPostsParams
	if err := bindParams(params, &args); err != nil {
		return nil, err
	}
	if args.Group != "" && args.Author != "" {
		return nil, InvalidParams("group and author cannot be combined")
	}

	ctx := c.Request.Context()
	page := pageParam(args.Page)

	switch {
	case args.Group != "":
		view, err := p.blog.GroupPosts(ctx, args.Group, page)
		if err != nil {
			return nil, err
		}
		return p.serializer.PostPage(view.Posts), nil
	case args.Author != "":
		view, err := p.blog.Profile(ctx, nil, args.Author, page)
		if err != nil {
			return nil, err
		}
		return p.serializer.PostPage(view.Posts), nil
	default:
		posts, err := p.blog.Index(ctx, page)
		if err != nil {
			return nil, err
		}
		return p.serializer.PostPage(posts), nil
	}
}

type getPostParams struct {
	ID int64 `json:"id"`
}

// Get handles posts.get
func (p *PostsAPI) Get(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var args getPostParams
	if err := bindParams(params, &args); err != nil {
		return nil, err
	}
	if args.ID < 1 {
		return nil, InvalidParams("missing required parameter: id")
	}

	view, err := p.blog.PostDetail(c.Request.Context(), args.ID)
	if err != nil {
		return nil, err
	}

	postObj := p.serializer.Post(view.Post)
	postObj["author_posts_count"] = view.PostCount
	postObj["comments"] = objects.Comments(view.Comments)
	return postObj, nil
}
