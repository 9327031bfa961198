// Package storage holds uploaded avatar images in an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// AvatarStore writes avatar images to an object-storage backend and renders
// their public URLs.
type AvatarStore struct {
	backend       ObjectStorage
	publicBaseURL string
}

// NewAvatarStore constructs an AvatarStore. publicBaseURL is the externally
// reachable prefix under which the bucket's objects are served.
func NewAvatarStore(backend ObjectStorage, publicBaseURL string) *AvatarStore {
	return &AvatarStore{
		backend:       backend,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// EnsureBucket ensures the avatar bucket exists.
func (s *AvatarStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Save stores the avatar for the given user, overwriting any previous one,
// and returns the image's public URL.
func (s *AvatarStore) Save(ctx context.Context, userID int, r io.Reader, size int64, contentType string) (string, error) {
	key := avatarKey(userID, contentType)
	if err := s.backend.Put(ctx, key, r, size, contentType); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.backend.Bucket(), key), nil
}

// Delete removes the stored avatar for the given user, if any.
func (s *AvatarStore) Delete(ctx context.Context, userID int, contentType string) error {
	return s.backend.Delete(ctx, avatarKey(userID, contentType))
}

func avatarKey(userID int, contentType string) string {
	ext := "img"
	switch contentType {
	case "image/png":
		ext = "png"
	case "image/jpeg":
		ext = "jpg"
	case "image/gif":
		ext = "gif"
	case "image/webp":
		ext = "webp"
	}
	return fmt.Sprintf("avatars/%d.%s", userID, ext)
}
