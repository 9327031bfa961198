package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devlink-social/apiserver/internal/auth"
	"github.com/devlink-social/apiserver/internal/gravatar"
	"github.com/devlink-social/apiserver/internal/store"
	"github.com/devlink-social/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateAvatar(ctx context.Context, id int, avatar string) error
	Delete(ctx context.Context, id int) error
}

// UserService covers registration, authentication, and account lookups.
type UserService struct {
	repo   UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenService
}

func NewUserService(repo UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new account with a gravatar-derived avatar and returns
// the created user together with an access token. A taken email yields
// ErrUserExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (types.User, string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, "", ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, "", fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return types.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Avatar:       gravatar.URL(email),
		PasswordHash: hashed,
	})
	if err != nil {
		// A concurrent registration can win the race between the
		// existence check and the insert.
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, "", ErrUserExists
		}
		return types.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return types.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate verifies the email/password pair and issues a token.
// The unknown-email and wrong-password cases are reported distinctly.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	return s.tokens.Issue(user.ID)
}

func (s *UserService) Get(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetAvatar replaces the user's avatar URL, typically after an upload.
func (s *UserService) SetAvatar(ctx context.Context, id int, avatar string) error {
	return s.repo.UpdateAvatar(ctx, id, avatar)
}
