package line

import (
	"fmt"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

const (
	// maxQuickReplyItems is the LINE limit of quick reply buttons per message
	maxQuickReplyItems = 13
	// maxActionLabel is the LINE limit of characters in an action label
	maxActionLabel = 20
)

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client *messaging_api.MessagingApiAPI
}

// Compile-time check to ensure LineClientAdapter implements the output port
var _ output.LineClient = (*LineClientAdapter)(nil)

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(channelToken string) (*LineClientAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := convertMessages(request.Messages)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}
	if _, err := a.client.ReplyMessage(req); err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Debugf("Sent %d reply message(s)", len(messages))

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// PushMessage - Sends push messages to LINE user directly
func (a *LineClientAdapter) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := convertMessages(request.Messages)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.PushMessageRequest{
		To:       request.To,
		Messages: messages,
	}
	if _, err := a.client.PushMessage(req, ""); err != nil {
		return nil, fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Sent %d push message(s) to: %s", len(messages), request.To)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Push message sent successfully",
	}, nil
}

func convertMessages(msgs []domain.LineOutgoingMessage) ([]messaging_api.MessageInterface, error) {
	messages := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, msg := range msgs {
		lineMsg, err := convertToLineMessage(msg)
		if err != nil {
			logrus.Errorf("Failed to convert message: %v", err)
			continue
		}
		messages = append(messages, lineMsg)
	}

	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}
	return messages, nil
}

// convertToLineMessage - Helper function to convert domain message to LINE SDK message
func convertToLineMessage(msg domain.LineOutgoingMessage) (messaging_api.MessageInterface, error) {
	switch msg.Type {
	case domain.LineMessageTypeText:
		return &messaging_api.TextMessage{
			Text:       msg.Text,
			QuickReply: quickReply(msg.Menu),
		}, nil

	case domain.LineMessageTypeSticker:
		return &messaging_api.StickerMessage{
			PackageId:  msg.PackageID,
			StickerId:  msg.StickerID,
			QuickReply: quickReply(msg.Menu),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported message type: %s", msg.Type)
	}
}

// quickReply renders a menu as postback quick reply buttons.
// Buttons past the LINE limit are dropped.
func quickReply(menu *domain.Menu) *messaging_api.QuickReply {
	buttons := menu.Buttons()
	if len(buttons) == 0 {
		return nil
	}
	if len(buttons) > maxQuickReplyItems {
		logrus.Warnf("Dropping %d quick reply button(s) over the limit", len(buttons)-maxQuickReplyItems)
		buttons = buttons[:maxQuickReplyItems]
	}

	items := make([]messaging_api.QuickReplyItem, 0, len(buttons))
	for _, b := range buttons {
		label := truncate(b.Label, maxActionLabel)
		items = append(items, messaging_api.QuickReplyItem{
			Type: "action",
			Action: &messaging_api.PostbackAction{
				Label:       label,
				Data:        b.Action.Encode(),
				DisplayText: label,
			},
		})
	}
	return &messaging_api.QuickReply{Items: items}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
