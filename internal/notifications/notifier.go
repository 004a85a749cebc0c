// Package notifications publishes community activity events over Redis pub/sub
// so downstream consumers (email digests, activity feeds) can react to them.
package notifications

import (
	"context"
	"encoding/json"
	"time"

	"sensei/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel community events are published on.
const Channel = "community:events"

// Event types emitted by the discussion services.
const (
	EventPostCreated     = "post.created"
	EventPostUpdated     = "post.updated"
	EventPostDeleted     = "post.deleted"
	EventCommentCreated  = "comment.created"
	EventReplyCreated    = "reply.created"
	EventReactionToggled = "reaction.toggled"
)

// Event is the wire format for a published community event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id"`
	SubjectID uint      `json:"subject_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier publishes events to Redis. A nil Notifier or a Notifier with a nil
// client silently drops events, so callers never need to guard the publish.
type Notifier struct {
	rdb    *redis.Client
	logger *observability.EventLogger
}

// NewNotifier creates a Notifier over the given Redis client (which may be nil).
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{
		rdb:    rdb,
		logger: observability.NewEventLogger(Channel),
	}
}

// Publish sends the event on the community channel. Failures are logged, not
// returned; event delivery is best-effort and never blocks the request path.
func (n *Notifier) Publish(ctx context.Context, event Event) {
	if n == nil || n.rdb == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if event.ID == "" {
		event.ID = observability.GenerateCorrelationID()
	}
	// Carry the event ID as correlation ID so publish logs line up with
	// whatever the consumer logs on its side.
	ctx = observability.WithCorrelationID(ctx, event.ID)

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.LogPublishError(ctx, event.Type, err)
		return
	}
	if err := n.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		n.logger.LogPublishError(ctx, event.Type, err)
		return
	}
	n.logger.LogPublish(ctx, event.Type, event.PostID)
}

// Subscribe returns a PubSub subscription on the community channel. The caller
// owns the subscription and must close it.
func (n *Notifier) Subscribe(ctx context.Context) *redis.PubSub {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Subscribe(ctx, Channel)
}
