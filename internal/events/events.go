// Package events publishes post-activity notifications to a message
// broker. Publishing is best-effort: a broker failure is logged and never
// propagates to the request that triggered it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/devlink-social/apiserver/types"
	"github.com/sirupsen/logrus"
)

const defaultTopic = "devlink.activity"

// Activity is the payload delivered for each post event.
type Activity struct {
	Type       string    `json:"type"`
	PostID     int       `json:"post_id"`
	UserID     int       `json:"user_id"`
	CommentID  string    `json:"comment_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	TypePostCreated   = "post.created"
	TypePostLiked     = "post.liked"
	TypePostCommented = "post.commented"
)

// Backend defines the broker-agnostic publish operations.
type Backend interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Publisher serializes activities and hands them to a backend.
type Publisher struct {
	backend Backend
	topic   string
}

// NewPublisher constructs a Publisher on the provided backend.
func NewPublisher(backend Backend) *Publisher {
	return &Publisher{
		backend: backend,
		topic:   defaultTopic,
	}
}

// PostCreated announces a newly created post.
func (p *Publisher) PostCreated(ctx context.Context, post types.Post) {
	p.publish(ctx, Activity{
		Type:   TypePostCreated,
		PostID: post.ID,
		UserID: post.UserID,
	})
}

// PostLiked announces a like on a post.
func (p *Publisher) PostLiked(ctx context.Context, postID, userID int) {
	p.publish(ctx, Activity{
		Type:   TypePostLiked,
		PostID: postID,
		UserID: userID,
	})
}

// PostCommented announces a comment on a post.
func (p *Publisher) PostCommented(ctx context.Context, postID, userID int, commentID string) {
	p.publish(ctx, Activity{
		Type:      TypePostCommented,
		PostID:    postID,
		UserID:    userID,
		CommentID: commentID,
	})
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}

func (p *Publisher) publish(ctx context.Context, activity Activity) {
	activity.OccurredAt = time.Now()

	data, err := json.Marshal(activity)
	if err != nil {
		logrus.WithError(err).WithField("type", activity.Type).Warn("failed to encode activity event")
		return
	}

	attrs := map[string]string{"type": activity.Type}
	if _, err := p.backend.Publish(ctx, p.topic, data, attrs); err != nil {
		logrus.WithError(err).WithField("type", activity.Type).Warn("failed to publish activity event")
	}
}
