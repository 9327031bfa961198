package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devlink-social/apiserver/internal/store"
)

// CascadeService deletes a user together with everything that exists only
// in reference to it: posts first, then the profile, then the account.
//
// The three stores are not spanned by a transaction. If a step fails, later
// steps are not attempted and the error is surfaced, leaving the system
// partially deleted; that window is accepted rather than rolled back.
type CascadeService struct {
	users    UserRepository
	profiles ProfileRepository
	posts    PostRepository
}

func NewCascadeService(users UserRepository, profiles ProfileRepository, posts PostRepository) *CascadeService {
	return &CascadeService{
		users:    users,
		profiles: profiles,
		posts:    posts,
	}
}

// DeleteAccount removes the user's posts, profile, and account in order.
// A user without a profile is fine; a missing account is store.ErrNotFound.
func (s *CascadeService) DeleteAccount(ctx context.Context, userID int) error {
	if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}

	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
