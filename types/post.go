package types

import "time"

// Post is a user-authored post. Name and Avatar are copied from the author
// at creation time and are not re-synced if the author later edits theirs.
// Likes and Comments are ordered newest-first.
type Post struct {
	ID     int    `json:"id" db:"id"`
	UserID int    `json:"user" db:"user_id"`
	Text   string `json:"text" db:"text"`
	Name   string `json:"name" db:"name"`
	Avatar string `json:"avatar" db:"avatar"`

	Likes    []Like    `json:"likes" db:"likes"`
	Comments []Comment `json:"comments" db:"comments"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Like marks a single user's like on a post. A post holds at most one
// Like per user.
type Like struct {
	ID     string `json:"id"`
	UserID int    `json:"user"`
}

// Comment is one comment on a post, with the author's name and avatar
// denormalized at creation time. ID is assigned by the server on insert.
type Comment struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
