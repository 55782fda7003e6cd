// Package auth is the identity collaborator: accounts, password sign-in, bearer tokens
// and sign-out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobtracker/internal/cache"
	"jobtracker/internal/logger"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Session is returned on register and sign-in.
type Session struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Provider is what the HTTP layer needs from the identity collaborator.
type Provider interface {
	Register(ctx context.Context, email, name, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, claims *Claims) error
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

// Service wires users, passwords, tokens and revocation together.
type Service struct {
	users   repository.UserRepository
	hasher  *PasswordHasher
	tokens  *TokenService
	revoker cache.Revoker
	log     logger.Logger
}

var _ Provider = (*Service)(nil)

func NewService(users repository.UserRepository, hasher *PasswordHasher, tokens *TokenService, revoker cache.Revoker, log logger.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, revoker: revoker, log: log}
}

func (s *Service) Register(ctx context.Context, email, name, password string) (*Session, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &model.User{
		Email:        normalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", logger.String("user_id", u.ID))
	return s.issue(u)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.hasher.Verify(u.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// SignOut revokes the token until its natural expiry.
func (s *Service) SignOut(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return ErrUnauthenticated
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.log.Info("user signed out", logger.String("user_id", claims.UserID))
	return nil
}

// Authenticate validates a bearer token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}
	return claims, nil
}

// IssueToken signs a token for an existing user id without a password check.
func (s *Service) IssueToken(userID string) (string, error) {
	token, _, err := s.tokens.Generate(userID)
	return token, err
}

func (s *Service) issue(u *model.User) (*Session, error) {
	token, claims, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
