package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/input"
	"skinlog-bot/internal/ports/output"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// maxReplyMessages is the LINE limit of messages per reply
const maxReplyMessages = 5

// DefaultDedupeTTL is how long handled webhook event IDs are remembered
const DefaultDedupeTTL = 10 * time.Minute

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient   output.LineClient
	conversation input.Conversation
	handled      *cache.Cache
}

// Compile-time check to ensure LineWebhookService implements the input port
var _ input.LineWebhookService = (*LineWebhookService)(nil)

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, conversation input.Conversation, dedupeTTL time.Duration) *LineWebhookService {
	if dedupeTTL <= 0 {
		dedupeTTL = DefaultDedupeTTL
	}
	return &LineWebhookService{
		lineClient:   lineClient,
		conversation: conversation,
		handled:      cache.New(dedupeTTL, 2*dedupeTTL),
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE.
// Every event is handled on its own; failures are collected and returned
// after all events ran.
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	var errs []error
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, source=%s, userID=%s",
			event.Type, event.Source.Type, event.Source.UserID)

		if err := s.handleEvent(ctx, event); err != nil {
			logrus.Errorf("Failed to handle %s event: %v", event.Type, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// handleEvent dispatches one event, converting a panic into an apology reply
func (s *LineWebhookService) handleEvent(ctx context.Context, event domain.LineWebhookEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Recovered from panic while handling event %s: %v", event.ID, r)
			err = s.send(event, domain.TextReply(msgApology, nil))
		}
	}()

	if s.alreadyHandled(event) {
		logrus.Infof("Skipping redelivered event: id=%s", event.ID)
		return nil
	}

	switch event.Type {
	case domain.LineEventTypeMessage:
		return s.handleMessageEvent(ctx, event)

	case domain.LineEventTypePostback:
		if event.Postback == nil {
			return nil
		}
		reply := s.conversation.Handle(ctx, domain.UserEvent{UserID: event.Source.UserID, Action: event.Postback})
		return s.send(event, reply)

	case domain.LineEventTypeFollow:
		logrus.Infof("User followed: userID=%s", event.Source.UserID)
		return s.push(event.Source.UserID, s.conversation.Welcome())

	case domain.LineEventTypeUnfollow:
		logrus.Infof("User unfollowed: userID=%s", event.Source.UserID)
		return nil

	default:
		logrus.Infof("Unhandled event type: %s", event.Type)
		return nil
	}
}

// handleMessageEvent - Business logic for message events
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}

	// Only handle text messages
	if event.Message.Type != domain.LineMessageTypeText {
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return nil
	}

	reply := s.conversation.Handle(ctx, domain.UserEvent{UserID: event.Source.UserID, Text: event.Message.Text})
	return s.send(event, reply)
}

// alreadyHandled records the event ID and reports whether a redelivered
// event was seen before. First deliveries are never skipped.
func (s *LineWebhookService) alreadyHandled(event domain.LineWebhookEvent) bool {
	if event.ID == "" {
		return false
	}
	if !event.IsRedelivery {
		s.handled.SetDefault(event.ID, struct{}{})
		return false
	}
	return s.handled.Add(event.ID, struct{}{}, cache.DefaultExpiration) != nil
}

// send replies with the reply token when there is one, pushing otherwise
func (s *LineWebhookService) send(event domain.LineWebhookEvent, reply domain.Reply) error {
	if len(reply.Messages) == 0 {
		return nil
	}
	if event.ReplyToken == "" {
		return s.push(event.Source.UserID, reply)
	}

	messages := reply.Messages
	if len(messages) > maxReplyMessages {
		messages = messages[:maxReplyMessages]
	}
	replyReq := domain.LineReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Messages:   messages,
	}
	if _, err := s.lineClient.ReplyMessage(replyReq); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (s *LineWebhookService) push(userID string, reply domain.Reply) error {
	if userID == "" || len(reply.Messages) == 0 {
		return nil
	}
	messages := reply.Messages
	if len(messages) > maxReplyMessages {
		messages = messages[:maxReplyMessages]
	}
	pushReq := domain.LinePushMessageRequest{
		To:       userID,
		Messages: messages,
	}
	if _, err := s.lineClient.PushMessage(pushReq); err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}
	return nil
}
