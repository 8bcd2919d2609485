// Package notifications publishes domain events about posts and comments to an external broker.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	PostCreated      = "post.created"
	PostsBulkCreated = "posts.bulk_created"
	PostUpdated      = "post.updated"
	PostDeleted      = "post.deleted"
	PostLiked        = "post.liked"
	PostShared       = "post.shared"
	CommentCreated   = "comment.created"
	CommentUpdated   = "comment.updated"
	CommentDeleted   = "comment.deleted"
	CommentLiked     = "comment.liked"
)

// Event is the envelope sent for every mutation.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	PostID     uint        `json:"postId"`
	CommentID  *uint       `json:"commentId,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NewPostEvent builds an event about a post.
func NewPostEvent(eventType string, postID uint, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		PostID:     postID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// NewCommentEvent builds an event about a comment under postID.
func NewCommentEvent(eventType string, postID, commentID uint, payload interface{}) Event {
	e := NewPostEvent(eventType, postID, payload)
	e.CommentID = &commentID
	return e
}
