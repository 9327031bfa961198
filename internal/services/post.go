package services

import (
	"context"
	"fmt"
	"time"

	"github.com/devlink-social/apiserver/types"
	"github.com/google/uuid"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]types.Post, error)
	Get(ctx context.Context, id int) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	SetLikes(ctx context.Context, postID int, likes []types.Like) error
	SetComments(ctx context.Context, postID int, comments []types.Comment) error
	Delete(ctx context.Context, id int) error
	DeleteByUserID(ctx context.Context, userID int) error
}

// ActivityPublisher announces post activity to interested consumers.
// Publishing is best-effort and never fails the triggering request.
type ActivityPublisher interface {
	PostCreated(ctx context.Context, post types.Post)
	PostLiked(ctx context.Context, postID, userID int)
	PostCommented(ctx context.Context, postID, userID int, commentID string)
}

// PostService covers posts and the like/comment sub-collection mutations.
//
// The "at most one like per user per post" invariant is checked against the
// fetched post before the likes column is written back. Two simultaneous
// like requests for the same post can both pass the check; the document
// store applies each write atomically, so the window is a duplicate like,
// not a corrupted sequence. The window is accepted here rather than closed
// with an application-level lock.
type PostService struct {
	repo     PostRepository
	users    UserRepository
	activity ActivityPublisher
}

// NewPostService constructs a PostService. activity may be nil, in which
// case no events are published.
func NewPostService(repo PostRepository, users UserRepository, activity ActivityPublisher) *PostService {
	return &PostService{
		repo:     repo,
		users:    users,
		activity: activity,
	}
}

// Create stores a new post, copying the author's current name and avatar
// onto it. The copies are not re-synced if the author later changes theirs.
func (s *PostService) Create(ctx context.Context, userID int, text string) (types.Post, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return types.Post{}, fmt.Errorf("load author: %w", err)
	}

	post, err := s.repo.Create(ctx, types.Post{
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return types.Post{}, fmt.Errorf("create post: %w", err)
	}

	if s.activity != nil {
		s.activity.PostCreated(ctx, post)
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]types.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	return s.repo.Get(ctx, id)
}

// Delete removes a post. Only the post's owner may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID int) error {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, postID)
}

// Like prepends a like by the user and returns the resulting sequence.
// A second like by the same user yields ErrAlreadyLiked and leaves the
// sequence unchanged.
func (s *PostService) Like(ctx context.Context, userID, postID int) ([]types.Like, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}

	likes := append([]types.Like{{ID: uuid.NewString(), UserID: userID}}, post.Likes...)
	if err := s.repo.SetLikes(ctx, postID, likes); err != nil {
		return nil, fmt.Errorf("persist likes: %w", err)
	}

	if s.activity != nil {
		s.activity.PostLiked(ctx, postID, userID)
	}
	return likes, nil
}

// Unlike removes the user's like and returns the resulting sequence,
// possibly empty. Unliking without a prior like yields ErrNotLiked.
func (s *PostService) Unlike(ctx context.Context, userID, postID int) ([]types.Like, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, like := range post.Likes {
		if like.UserID == userID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrNotLiked
	}

	likes := append(post.Likes[:index:index], post.Likes[index+1:]...)
	if err := s.repo.SetLikes(ctx, postID, likes); err != nil {
		return nil, fmt.Errorf("persist likes: %w", err)
	}
	return likes, nil
}

// AddComment prepends a comment with a fresh identity and the commenting
// user's denormalized name and avatar, and returns the resulting sequence.
func (s *PostService) AddComment(ctx context.Context, userID, postID int, text string) ([]types.Comment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := types.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now(),
	}
	comments := append([]types.Comment{comment}, post.Comments...)
	if err := s.repo.SetComments(ctx, postID, comments); err != nil {
		return nil, fmt.Errorf("persist comments: %w", err)
	}

	if s.activity != nil {
		s.activity.PostCommented(ctx, postID, userID, comment.ID)
	}
	return comments, nil
}

// RemoveComment removes the comment whose identity matches commentID. Only
// the comment's own author may remove it, regardless of who owns the post.
// The removal position is the located comment's position; it is never
// re-derived from the requester's identity, which would remove the wrong
// comment when a user has several comments on the post.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID int, commentID string) ([]types.Comment, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, comment := range post.Comments {
		if comment.ID == commentID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrEntryNotFound
	}
	if post.Comments[index].UserID != userID {
		return nil, ErrForbidden
	}

	comments := append(post.Comments[:index:index], post.Comments[index+1:]...)
	if err := s.repo.SetComments(ctx, postID, comments); err != nil {
		return nil, fmt.Errorf("persist comments: %w", err)
	}
	return comments, nil
}
