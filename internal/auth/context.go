package auth

import (
	"context"

	"github.com/yatube/yatube/internal/models"
)

type contextKey struct{}

// WithUser returns a copy of ctx carrying the signed-in user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the signed-in user, or nil for an anonymous request
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(contextKey{}).(*models.User)
	return user
}
