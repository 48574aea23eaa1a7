package usecase

import (
	"context"
	"time"

	"blog-api/pkg/logger"
)

// EventPublisher delivers domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

const publishTimeout = 5 * time.Second

// publishAsync fires the event without blocking the request. A nil publisher is a no-op.
func publishAsync(publisher EventPublisher, log *logger.Logger, routingKey string, payload interface{}) {
	if publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := publisher.Publish(ctx, routingKey, payload); err != nil {
			log.Error("Failed to publish %s event: %v", routingKey, err)
		}
	}()
}

type UserEvent struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
}

type PostEvent struct {
	PostID   string `json:"postId"`
	AuthorID string `json:"authorId"`
	Title    string `json:"title,omitempty"`
}
