// Package store defines the query interface the blog is built on. Lookups
// of a single row return (nil, nil) when the row does not exist.
package store

import (
	"context"
	"errors"

	"github.com/yatube/yatube/internal/models"
)

// ErrDuplicate is returned when a create violates a uniqueness constraint
var ErrDuplicate = errors.New("duplicate key")

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	GroupID  int64
	AuthorID int64
	// FollowerID selects posts whose author is followed by this user
	FollowerID int64
}

// Store groups the per-entity query sets
type Store interface {
	Users() UserStore
	Groups() GroupStore
	Posts() PostStore
	Comments() CommentStore
	Follows() FollowStore
}

// UserStore provides user queries
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// GroupStore provides group queries
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
}

// PostStore provides post queries. Listings are ordered newest first and
// carry Author and Group.
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
}

// CommentStore provides comment queries
type CommentStore interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
}

// FollowStore provides follow queries
type FollowStore interface {
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	// Create inserts the follow unless it already exists and reports
	// whether a row was inserted.
	Create(ctx context.Context, userID, authorID int64) (bool, error)
	// Delete removes the follow and reports whether a row was removed.
	Delete(ctx context.Context, userID, authorID int64) (bool, error)
	CountFollowers(ctx context.Context, authorID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
}
