package input

import (
	"context"

	"skinlog-bot/internal/domain"
)

// Conversation interface - Input port (use case)
// Drives one user's trade log conversation, one event at a time
type Conversation interface {
	// Handle consumes a user event and returns the reply to render
	Handle(ctx context.Context, event domain.UserEvent) domain.Reply

	// Welcome returns the greeting shown to a new follower
	Welcome() domain.Reply
}
