package blog

import (
	"context"
	"fmt"

	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
)

// GroupView is a group with one page of its posts
type GroupView struct {
	Group *models.Group
	Posts PostPage
}

// ProfileView is an author with one page of their posts
type ProfileView struct {
	Author     *models.User
	Posts      PostPage
	PostsCount int64
	// Following reports whether the viewer follows Author
	Following      bool
	Followers      int64
	FollowingCount int64
}

// Index lists every post
func (s *Service) Index(ctx context.Context, rawPage string) (PostPage, error) {
	return s.listPosts(ctx, store.PostFilter{}, rawPage)
}

// User returns the user with the given username
func (s *Service) User(ctx context.Context, username string) (*models.User, error) {
	return s.userByUsername(ctx, username)
}

// Groups lists every group by title
func (s *Service) Groups(ctx context.Context) ([]*models.Group, error) {
	return s.store.Groups().List(ctx)
}

// Group returns the group with the given slug
func (s *Service) Group(ctx context.Context, slug string) (*models.Group, error) {
	group, err := s.store.Groups().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, &lookupError{kind: "group", key: slug}
	}
	return group, nil
}

// GroupPosts lists the posts of the group with the given slug
func (s *Service) GroupPosts(ctx context.Context, slug, rawPage string) (*GroupView, error) {
	group, err := s.Group(ctx, slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.listPosts(ctx, store.PostFilter{GroupID: group.ID}, rawPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of group %s: %w", slug, err)
	}
	return &GroupView{Group: group, Posts: posts}, nil
}

// Profile lists the posts of the user with the given username, along
// with the viewer's follow state
func (s *Service) Profile(ctx context.Context, viewer *models.User, username, rawPage string) (*ProfileView, error) {
	author, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.listPosts(ctx, store.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of %s: %w", username, err)
	}

	view := &ProfileView{
		Author:     author,
		Posts:      posts,
		PostsCount: posts.Total,
	}

	follows := s.store.Follows()
	if viewer != nil {
		if view.Following, err = follows.Exists(ctx, viewer.ID, author.ID); err != nil {
			return nil, err
		}
	}
	if view.Followers, err = follows.CountFollowers(ctx, author.ID); err != nil {
		return nil, err
	}
	if view.FollowingCount, err = follows.CountFollowing(ctx, author.ID); err != nil {
		return nil, err
	}
	return view, nil
}

// Feed lists the posts of the authors the viewer follows
func (s *Service) Feed(ctx context.Context, viewer *models.User, rawPage string) (PostPage, error) {
	if viewer == nil {
		return PostPage{}, ErrLoginRequired
	}
	return s.listPosts(ctx, store.PostFilter{FollowerID: viewer.ID}, rawPage)
}
