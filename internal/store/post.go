package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/devlink-social/apiserver/types"
)

// PostRepository handles persistence for posts. Likes and comments live as
// JSONB columns on the post row; SetLikes/SetComments persist a mutated
// sequence with a single row update.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, user_id, text, name, avatar, likes, comments, created_at, updated_at`

func (r *PostRepository) List(ctx context.Context) ([]types.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	const query = `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	likesJSON, commentsJSON, err := marshalPostJSON(post)
	if err != nil {
		return types.Post{}, err
	}

	const query = `
		INSERT INTO posts (user_id, text, name, avatar, likes, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		post.UserID,
		post.Text,
		post.Name,
		post.Avatar,
		likesJSON,
		commentsJSON,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) SetLikes(ctx context.Context, postID int, likes []types.Like) error {
	if likes == nil {
		likes = []types.Like{}
	}
	likesJSON, err := json.Marshal(likes)
	if err != nil {
		return err
	}

	const query = `
		UPDATE posts
		SET likes = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, likesJSON, time.Now(), postID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) SetComments(ctx context.Context, postID int, comments []types.Comment) error {
	if comments == nil {
		comments = []types.Comment{}
	}
	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return err
	}

	const query = `
		UPDATE posts
		SET comments = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, commentsJSON, time.Now(), postID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every post owned by the user. Deleting zero rows
// is not an error; cascade deletion calls this for users with no posts.
func (r *PostRepository) DeleteByUserID(ctx context.Context, userID int) error {
	const query = `DELETE FROM posts WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	var likesJSON, commentsJSON []byte
	if err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Text,
		&post.Name,
		&post.Avatar,
		&likesJSON,
		&commentsJSON,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return types.Post{}, err
	}

	_ = json.Unmarshal(likesJSON, &post.Likes)
	_ = json.Unmarshal(commentsJSON, &post.Comments)
	return post, nil
}

func marshalPostJSON(post types.Post) (likes, comments []byte, err error) {
	if post.Likes == nil {
		post.Likes = []types.Like{}
	}
	if post.Comments == nil {
		post.Comments = []types.Comment{}
	}

	if likes, err = json.Marshal(post.Likes); err != nil {
		return nil, nil, err
	}
	if comments, err = json.Marshal(post.Comments); err != nil {
		return nil, nil, err
	}
	return likes, comments, nil
}
