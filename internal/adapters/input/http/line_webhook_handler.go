package http

import (
	"bytes"
	"net/http"
	"time"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := logrus.WithField("request_id", requestID)

	// Convert Fiber request to http.Request for LINE SDK
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(c.Body()))
	if err != nil {
		log.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal error",
		})
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	// Parse and validate webhook request
	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		log.Errorf("Failed to parse webhook request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid signature or request",
		})
	}

	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		if domainEvent := h.convertToDomainEvent(event); domainEvent != nil {
			domainEvents = append(domainEvents, *domainEvent)
		}
	}
	log.Infof("Received %d LINE event(s)", len(domainEvents))

	// Failures are per event and already answered; the batch is acknowledged
	// so LINE does not redeliver the events that succeeded.
	if err := h.service.HandleWebhook(c.UserContext(), domain.LineWebhookRequest{Events: domainEvents}); err != nil {
		log.Errorf("Failed to handle some webhook events: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func (h *LineWebhookHandler) convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return h.convertMessageEvent(e)
	case webhook.PostbackEvent:
		return h.convertPostbackEvent(e)
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			ID:           e.WebhookEventId,
			Type:         domain.LineEventTypeFollow,
			Timestamp:    eventTime(e.Timestamp),
			ReplyToken:   e.ReplyToken,
			IsRedelivery: isRedelivery(e.DeliveryContext),
			Source:       h.convertSource(e.Source),
		}
	case webhook.UnfollowEvent:
		return &domain.LineWebhookEvent{
			ID:           e.WebhookEventId,
			Type:         domain.LineEventTypeUnfollow,
			Timestamp:    eventTime(e.Timestamp),
			IsRedelivery: isRedelivery(e.DeliveryContext),
			Source:       h.convertSource(e.Source),
		}
	default:
		logrus.Warnf("Unsupported event type: %T", event)
		return nil
	}
}

// convertMessageEvent - Converts message event
func (h *LineWebhookHandler) convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		ID:           event.WebhookEventId,
		Type:         domain.LineEventTypeMessage,
		Timestamp:    eventTime(event.Timestamp),
		ReplyToken:   event.ReplyToken,
		IsRedelivery: isRedelivery(event.DeliveryContext),
		Source:       h.convertSource(event.Source),
	}

	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:        msg.Id,
			Type:      domain.LineMessageTypeSticker,
			PackageID: msg.PackageId,
			StickerID: msg.StickerId,
		}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeImage,
		}
	default:
		logrus.Warnf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// convertPostbackEvent decodes the postback data into a typed action.
// Data that does not decode is dropped here and never reaches the application.
func (h *LineWebhookHandler) convertPostbackEvent(event webhook.PostbackEvent) *domain.LineWebhookEvent {
	if event.Postback == nil {
		return nil
	}
	action, err := domain.ParseAction(event.Postback.Data)
	if err != nil {
		logrus.Warnf("Ignoring postback: %v", err)
		return nil
	}

	return &domain.LineWebhookEvent{
		ID:           event.WebhookEventId,
		Type:         domain.LineEventTypePostback,
		Timestamp:    eventTime(event.Timestamp),
		ReplyToken:   event.ReplyToken,
		IsRedelivery: isRedelivery(event.DeliveryContext),
		Source:       h.convertSource(event.Source),
		Postback:     &action,
	}
}

// convertSource - Converts event source
func (h *LineWebhookHandler) convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeUser,
			UserID: s.UserId,
		}
	case webhook.GroupSource:
		return domain.LineSource{
			Type:    domain.LineSourceTypeGroup,
			UserID:  s.UserId,
			GroupID: s.GroupId,
		}
	case webhook.RoomSource:
		return domain.LineSource{
			Type:   domain.LineSourceTypeRoom,
			UserID: s.UserId,
			RoomID: s.RoomId,
		}
	default:
		return domain.LineSource{}
	}
}

func isRedelivery(dc *webhook.DeliveryContext) bool {
	return dc != nil && dc.IsRedelivery
}

func eventTime(millis int64) time.Time {
	return time.UnixMilli(millis)
}
