package services

import (
	"context"
	"time"

	"github.com/devlink-social/apiserver/internal/store"
	"github.com/devlink-social/apiserver/types"
)

type fakeUserRepo struct {
	users     map[int]types.User
	nextID    int
	deleteErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]types.User), nextID: 1}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id int, avatar string) error {
	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Avatar = avatar
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles  map[int]types.Profile // keyed by user id
	nextID    int
	updateErr error
	deleteErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int]types.Profile), nextID: 1}
}

func (r *fakeProfileRepo) List(_ context.Context) ([]types.Profile, error) {
	profiles := make([]types.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID int) (types.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return types.Profile{}, store.ErrNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile types.Profile) (types.Profile, error) {
	if _, ok := r.profiles[profile.UserID]; ok {
		return types.Profile{}, store.ErrDuplicate
	}
	profile.ID = r.nextID
	r.nextID++
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile types.Profile) (types.Profile, error) {
	if r.updateErr != nil {
		return types.Profile{}, r.updateErr
	}
	if _, ok := r.profiles[profile.UserID]; !ok {
		return types.Profile{}, store.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID int) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.profiles[userID]; !ok {
		return store.ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

type fakePostRepo struct {
	posts      map[int]types.Post
	nextID     int
	setErr     error
	deleteErr  error
	deletedFor []int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int]types.Post), nextID: 1}
}

func (r *fakePostRepo) List(_ context.Context) ([]types.Post, error) {
	posts := make([]types.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *fakePostRepo) Get(_ context.Context, id int) (types.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (r *fakePostRepo) Create(_ context.Context, post types.Post) (types.Post, error) {
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = post
	return post, nil
}

func (r *fakePostRepo) SetLikes(_ context.Context, postID int, likes []types.Like) error {
	if r.setErr != nil {
		return r.setErr
	}
	post, ok := r.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	post.Likes = likes
	r.posts[postID] = post
	return nil
}

func (r *fakePostRepo) SetComments(_ context.Context, postID int, comments []types.Comment) error {
	if r.setErr != nil {
		return r.setErr
	}
	post, ok := r.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	post.Comments = comments
	r.posts[postID] = post
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByUserID(_ context.Context, userID int) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedFor = append(r.deletedFor, userID)
	for id, post := range r.posts {
		if post.UserID == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

type recordedActivity struct {
	kind      string
	postID    int
	userID    int
	commentID string
}

type fakeActivityPublisher struct {
	events []recordedActivity
}

func (p *fakeActivityPublisher) PostCreated(_ context.Context, post types.Post) {
	p.events = append(p.events, recordedActivity{kind: "created", postID: post.ID, userID: post.UserID})
}

func (p *fakeActivityPublisher) PostLiked(_ context.Context, postID, userID int) {
	p.events = append(p.events, recordedActivity{kind: "liked", postID: postID, userID: userID})
}

func (p *fakeActivityPublisher) PostCommented(_ context.Context, postID, userID int, commentID string) {
	p.events = append(p.events, recordedActivity{kind: "commented", postID: postID, userID: userID, commentID: commentID})
}
