package input

import (
	"context"

	"skinlog-bot/internal/domain"
)

// LineWebhookService interface - Input port (use case)
// Defines what the application can do with LINE webhook events
type LineWebhookService interface {
	// HandleWebhook processes incoming webhook events from LINE.
	// Each event is handled independently; a failure in one event never
	// prevents the others from being processed.
	HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error
}
