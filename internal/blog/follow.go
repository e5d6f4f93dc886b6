package blog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yatube/yatube/internal/models"
)

// Follow subscribes the viewer to the author with the given username and
// returns the author. Following yourself or following twice is a no-op.
func (s *Service) Follow(ctx context.Context, viewer *models.User, username string) (*models.User, error) {
	if viewer == nil {
		return nil, ErrLoginRequired
	}

	author, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == viewer.ID {
		return author, nil
	}

	created, err := s.store.Follows().Create(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to follow %s: %w", username, err)
	}
	if created {
		s.logger.Info("Follow created", zap.Int64("user_id", viewer.ID), zap.Int64("author_id", author.ID))
	}
	return author, nil
}

// Unfollow removes the viewer's subscription to the author with the given
// username and returns the author. It fails with ErrNotFound when the
// viewer does not follow them.
func (s *Service) Unfollow(ctx context.Context, viewer *models.User, username string) (*models.User, error) {
	if viewer == nil {
		return nil, ErrLoginRequired
	}

	author, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.Follows().Delete(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to unfollow %s: %w", username, err)
	}
	if !deleted {
		return nil, fmt.Errorf("follow of %s: %w", username, ErrNotFound)
	}

	s.logger.Info("Follow removed", zap.Int64("user_id", viewer.ID), zap.Int64("author_id", author.ID))
	return author, nil
}
