// Package auth handles accounts and cookie sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
	"github.com/yatube/yatube/pkg/config"
	"github.com/yatube/yatube/pkg/logging"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password
	ErrInvalidCredentials = errors.New("please enter a correct username and password")
	// ErrInvalidToken is returned for a malformed, expired or revoked session
	ErrInvalidToken = errors.New("session token invalid")
)

const revokedPrefix = "session:revoked:"

// Claims is the session token payload
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// Service signs users up and in and resolves session tokens
type Service struct {
	users   store.UserStore
	secret  []byte
	ttl     time.Duration
	revoked *cache.Cache
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates an auth service. revoked may be nil, in which case
// logout only clears the cookie.
func NewService(users store.UserStore, cfg *config.AuthConfig, revoked *cache.Cache) *Service {
	return &Service{
		users:   users,
		secret:  []byte(cfg.Secret),
		ttl:     cfg.SessionTTL,
		revoked: revoked,
		logger:  logging.WithComponent("auth"),
		now:     time.Now,
	}
}

// TTL is the lifetime of issued sessions
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup validates the form and creates the user. Validation failures
// are returned as forms.Errors.
func (s *Service) Signup(ctx context.Context, in *forms.SignupInput) (*models.User, error) {
	if errs := in.Validate(); errs.Any() {
		return nil, errs
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			errs := forms.Errors{}
			errs.Add("username", "A user with that username already exists.")
			return nil, errs
		}
		return nil, err
	}

	s.logger.Info("User signed up", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and returns the matching user
func (s *Service) Login(ctx context.Context, in *forms.LoginInput) (*models.User, error) {
	if errs := in.Validate(); errs.Any() {
		return nil, errs
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a session token for user
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves a session token to its user
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	if s.revoked.Enabled() {
		revoked, err := s.revoked.Exists(ctx, revokedPrefix+claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check session revocation: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Logout revokes the session until it would have expired anyway
func (s *Service) Logout(ctx context.Context, token string) error {
	if !s.revoked.Enabled() {
		return nil
	}

	claims, err := s.parseToken(token)
	if err != nil {
		// Nothing to revoke
		return nil
	}

	remaining := claims.ExpiresAt.Time.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	return s.revoked.Set(ctx, revokedPrefix+claims.ID, claims.UserID, remaining)
}
