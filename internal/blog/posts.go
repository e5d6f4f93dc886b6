package blog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/media"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
	"github.com/yatube/yatube/pkg/telemetry"
)

const invalidGroupMessage = "Select a valid choice. That choice is not one of the available choices."

// DetailView is a post with its comments
type DetailView struct {
	Post *models.Post
	// PostCount is the total number of posts by the post's author
	PostCount int64
	Comments  []*models.Comment
}

// PostDetail loads a post, its author's post count and its comments
func (s *Service) PostDetail(ctx context.Context, id int64) (*DetailView, error) {
	post, err := s.postByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.store.Posts().Count(ctx, store.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}

	comments, err := s.store.Comments().ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", id, err)
	}

	return &DetailView{Post: post, PostCount: count, Comments: comments}, nil
}

// validatePost checks the fields and the selected group
func (s *Service) validatePost(ctx context.Context, in *forms.PostInput) (forms.Errors, error) {
	errs := in.Validate()
	if errs.Any() {
		return errs, nil
	}

	if groupID := in.GroupID(); groupID != 0 {
		group, err := s.store.Groups().GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			errs.Add("group", invalidGroupMessage)
		}
	}
	return errs, nil
}

// saveImage stores an upload, reporting rejected files as a field error
func (s *Service) saveImage(upload io.Reader) (string, forms.Errors, error) {
	name, err := s.images.Save(upload)
	switch {
	case err == nil:
		return name, nil, nil
	case errors.Is(err, media.ErrNotImage):
		errs := forms.Errors{}
		errs.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		return "", errs, nil
	case errors.Is(err, media.ErrTooLarge):
		errs := forms.Errors{}
		errs.Add("image", "The uploaded file is too large.")
		return "", errs, nil
	default:
		return "", nil, err
	}
}

func groupPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// CreatePost publishes a new post by viewer. upload may be nil. Invalid
// input is returned as forms.Errors and nothing is stored.
func (s *Service) CreatePost(ctx context.Context, viewer *models.User, in *forms.PostInput, upload io.Reader) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrLoginRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "blog.CreatePost")
	defer span.End()

	errs, err := s.validatePost(ctx, in)
	if err != nil {
		return nil, err
	}
	if errs.Any() {
		return nil, errs
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: viewer.ID,
		GroupID:  groupPtr(in.GroupID()),
	}

	if upload != nil {
		name, errs, err := s.saveImage(upload)
		if err != nil {
			return nil, err
		}
		if errs.Any() {
			return nil, errs
		}
		post.Image = name
	}

	if err := s.store.Posts().Create(ctx, post); err != nil {
		s.removeImage(post.Image)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	span.SetAttributes(attribute.Int64("post.id", post.ID))

	s.logger.Info("Post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", viewer.ID),
		zap.Bool("image", post.Image != ""),
	)
	return post, nil
}

// PostForEdit loads a post the viewer is allowed to edit
func (s *Service) PostForEdit(ctx context.Context, viewer *models.User, id int64) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrLoginRequired
	}

	post, err := s.postByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewer.ID {
		return nil, ErrNotAuthor
	}
	return post, nil
}

// EditPost updates a post in place. A new upload replaces the image,
// in.ClearImage removes it, otherwise the image is kept.
func (s *Service) EditPost(ctx context.Context, viewer *models.User, id int64, in *forms.PostInput, upload io.Reader) (*models.Post, error) {
	post, err := s.PostForEdit(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "blog.EditPost")
	defer span.End()
	span.SetAttributes(attribute.Int64("post.id", id))

	errs, err := s.validatePost(ctx, in)
	if err != nil {
		return nil, err
	}
	if errs.Any() {
		return nil, errs
	}

	oldImage := post.Image
	newImage := oldImage
	switch {
	case upload != nil:
		name, errs, err := s.saveImage(upload)
		if err != nil {
			return nil, err
		}
		if errs.Any() {
			return nil, errs
		}
		newImage = name
	case in.ClearImage:
		newImage = ""
	}

	post.Text = in.Text
	post.GroupID = groupPtr(in.GroupID())
	post.Image = newImage
	// Relations are reloaded below
	post.Group = nil

	if err := s.store.Posts().Update(ctx, post); err != nil {
		if newImage != oldImage {
			s.removeImage(newImage)
		}
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	if newImage != oldImage {
		s.removeImage(oldImage)
	}

	s.logger.Info("Post updated", zap.Int64("post_id", id), zap.Int64("author_id", viewer.ID))
	return s.postByID(ctx, id)
}

func (s *Service) removeImage(name string) {
	if name == "" {
		return
	}
	if err := s.images.Delete(name); err != nil {
		s.logger.Warn("Failed to remove image", zap.String("name", name), zap.Error(err))
	}
}

// AddComment adds the viewer's comment to a post. An invalid comment is
// dropped without an error and a nil comment is returned.
func (s *Service) AddComment(ctx context.Context, viewer *models.User, postID int64, in *forms.CommentInput) (*models.Comment, error) {
	if viewer == nil {
		return nil, ErrLoginRequired
	}

	post, err := s.postByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if errs := in.Validate(); errs.Any() {
		s.logger.Debug("Dropping invalid comment", zap.Int64("post_id", postID), zap.Error(errs))
		return nil, nil
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: viewer.ID,
		Text:     in.Text,
	}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
