package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store/memstore"
	"github.com/yatube/yatube/pkg/config"
)

func newTestService(t *testing.T, withRedis bool) *Service {
	t.Helper()
	var revoked *cache.Cache
	if withRedis {
		mr := miniredis.RunT(t)
		revoked = cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	}
	cfg := &config.AuthConfig{Secret: "test-secret", SessionTTL: time.Hour}
	return NewService(memstore.New().Users(), cfg, revoked)
}

func signup(t *testing.T, svc *Service, username string) *models.User {
	t.Helper()
	user, err := svc.Signup(context.Background(), &forms.SignupInput{
		Username:        username,
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	require.NoError(t, err)
	return user
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	user := signup(t, svc, "leo")
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	got, err := svc.Login(ctx, &forms.LoginInput{Username: "leo", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, &forms.LoginInput{Username: "leo", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &forms.LoginInput{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService(t, false)
	signup(t, svc, "leo")

	_, err := svc.Signup(context.Background(), &forms.SignupInput{
		Username:        "leo",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	var errs forms.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"A user with that username already exists."}, errs.Get("username"))

	_, err = svc.Signup(context.Background(), &forms.SignupInput{Username: "bad name"})
	require.ErrorAs(t, err, &errs)
	assert.NotEmpty(t, errs.Get("username"))
	assert.NotEmpty(t, errs.Get("password1"))
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()
	user := signup(t, svc, "leo")

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Username)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(memstore.New().Users(), &config.AuthConfig{Secret: "other", SessionTTL: time.Hour}, nil)
	_, err = other.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateExpired(t *testing.T) {
	svc := newTestService(t, false)
	user := signup(t, svc, "leo")

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()
	user := signup(t, svc, "leo")

	token, err := svc.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	fresh, err := svc.IssueToken(user)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, fresh)
	assert.NoError(t, err)
}

func TestLogoutWithoutRedis(t *testing.T) {
	svc := newTestService(t, false)
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}
