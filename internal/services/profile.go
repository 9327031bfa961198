package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devlink-social/apiserver/internal/store"
	"github.com/devlink-social/apiserver/types"
	"github.com/google/uuid"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	List(ctx context.Context) ([]types.Profile, error)
	GetByUserID(ctx context.Context, userID int) (types.Profile, error)
	Create(ctx context.Context, profile types.Profile) (types.Profile, error)
	Update(ctx context.Context, profile types.Profile) (types.Profile, error)
	DeleteByUserID(ctx context.Context, userID int) error
}

// ProfileService covers profile upserts and the experience/education
// sub-collection mutations. The parent profile is always located by the
// authenticated user's identity, which is what makes these mutations
// ownership-checked: a requester can only ever touch their own profile.
type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) List(ctx context.Context) ([]types.Profile, error) {
	return s.repo.List(ctx)
}

func (s *ProfileService) GetByUser(ctx context.Context, userID int) (types.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Upsert creates the user's profile or updates the scalar fields of an
// existing one. Experience and education entries survive an update; they
// are only changed through their own mutations.
func (s *ProfileService) Upsert(ctx context.Context, profile types.Profile) (types.Profile, error) {
	existing, err := s.repo.GetByUserID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.repo.Create(ctx, profile)
		}
		return types.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	profile.ID = existing.ID
	profile.Experience = existing.Experience
	profile.Education = existing.Education
	profile.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, profile)
}

// AddExperience assigns a fresh identity to the entry, prepends it
// (newest first), and persists the profile. The updated sequence is
// returned.
func (s *ProfileService) AddExperience(ctx context.Context, userID int, entry types.Experience) ([]types.Experience, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	profile.Experience = append([]types.Experience{entry}, profile.Experience...)

	if _, err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return profile.Experience, nil
}

// RemoveExperience removes the entry whose identity matches entryID.
// Removal is strictly by entry identity; an unknown identity yields
// ErrEntryNotFound and leaves the sequence untouched.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID int, entryID string) ([]types.Experience, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, entry := range profile.Experience {
		if entry.ID == entryID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrEntryNotFound
	}

	profile.Experience = append(profile.Experience[:index], profile.Experience[index+1:]...)

	if _, err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return profile.Experience, nil
}

// AddEducation mirrors AddExperience for the education sequence.
func (s *ProfileService) AddEducation(ctx context.Context, userID int, entry types.Education) ([]types.Education, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	profile.Education = append([]types.Education{entry}, profile.Education...)

	if _, err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return profile.Education, nil
}

// RemoveEducation mirrors RemoveExperience for the education sequence.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID int, entryID string) ([]types.Education, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, entry := range profile.Education {
		if entry.ID == entryID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrEntryNotFound
	}

	profile.Education = append(profile.Education[:index], profile.Education[index+1:]...)

	if _, err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return profile.Education, nil
}
