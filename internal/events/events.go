// Package events publishes post and like domain events to an external broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypePostCreated = "post.created"
	TypePostDeleted = "post.deleted"
	TypePostLiked   = "post.liked"
	TypePostUnliked = "post.unliked"
)

// Event describes a state change that has already been committed to the store.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PostID     uint      `json:"postId"`
	UserID     string    `json:"userId,omitempty"`
	LikeCount  *int64    `json:"likeCount,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New stamps an event with a fresh ID and the current time.
func New(eventType string, postID uint, userID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		PostID:     postID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// WithLikeCount returns a copy of e carrying the post's like count after the change.
func (e Event) WithLikeCount(count int64) Event {
	e.LikeCount = &count
	return e
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

func encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}
