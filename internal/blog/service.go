// Package blog implements the blog operations behind every page: the
// post listings, post detail, post authoring, comments and follows.
//
// The viewer is always passed in explicitly; a nil viewer is an
// anonymous request.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/paginator"
	"github.com/yatube/yatube/internal/store"
	"github.com/yatube/yatube/pkg/logging"
	"github.com/yatube/yatube/pkg/telemetry"
)

var (
	// ErrNotFound is returned for an unknown group, user, post or follow
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor is returned when the viewer may not edit a post
	ErrNotAuthor = errors.New("only the author can edit this post")
	// ErrLoginRequired is returned when an operation needs a viewer
	ErrLoginRequired = errors.New("login required")
)

// PostPage is one page of a post listing
type PostPage = paginator.PageOf[*models.Post]

// Service runs blog operations against a store
type Service struct {
	store    store.Store
	images   *media.Storage
	pageSize int
	logger   *zap.Logger
}

// NewService creates a blog service showing pageSize posts per page
func NewService(st store.Store, images *media.Storage, pageSize int) *Service {
	return &Service{
		store:    st,
		images:   images,
		pageSize: pageSize,
		logger:   logging.WithComponent("blog"),
	}
}

// listPosts counts the matching posts, resolves the requested page and
// loads only that page's window
func (s *Service) listPosts(ctx context.Context, f store.PostFilter, rawPage string) (PostPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "blog.listPosts")
	defer span.End()

	total, err := s.store.Posts().Count(ctx, f)
	if err != nil {
		return PostPage{}, err
	}

	pg := paginator.New(total, s.pageSize).Page(rawPage)
	span.SetAttributes(
		attribute.Int64("posts.total", total),
		attribute.Int("page.number", pg.Number),
	)

	posts, err := s.store.Posts().List(ctx, f, pg.Offset(), pg.Limit())
	if err != nil {
		return PostPage{}, err
	}
	return PostPage{Page: pg, Items: posts}, nil
}

func (s *Service) userByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &lookupError{kind: "user", key: username}
	}
	return user, nil
}

func (s *Service) postByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.store.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &lookupError{kind: "post", key: id}
	}
	return post, nil
}

// lookupError names the missing row and matches ErrNotFound
type lookupError struct {
	kind string
	key  interface{}
}

func (e *lookupError) Error() string {
	return e.kind + " " + formatKey(e.key) + ": " + ErrNotFound.Error()
}

func (e *lookupError) Unwrap() error {
	return ErrNotFound
}

func formatKey(key interface{}) string {
	switch k := key.(type) {
	case int64:
		return strconv.FormatInt(k, 10)
	case string:
		return strconv.Quote(k)
	default:
		return fmt.Sprint(k)
	}
}
