package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures
type (
	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Events []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []LineOutgoingMessage
	}

	// LinePushMessageRequest struct - Domain LINE push message request DTO
	LinePushMessageRequest struct {
		To       string
		Messages []LineOutgoingMessage
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type      LineMessageType
		Text      string
		Menu      *Menu  // Buttons rendered under the message
		PackageID string // For sticker
		StickerID string // For sticker
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}

	// Menu struct - labeled buttons arranged in rows
	Menu struct {
		Rows [][]Button
	}

	// Button struct - a labeled button carrying an action
	Button struct {
		Label  string
		Action Action
	}

	// UserEvent struct - an inbound event addressed to one user's conversation
	UserEvent struct {
		UserID string
		Text   string  // Free text, empty for button presses
		Action *Action // Button press, nil for free text
	}

	// Reply struct - what the conversation answers to one event
	Reply struct {
		Messages []LineOutgoingMessage
	}
)

// TextReply builds a single text message reply with an optional menu
func TextReply(text string, menu *Menu) Reply {
	return Reply{Messages: []LineOutgoingMessage{{Type: LineMessageTypeText, Text: text, Menu: menu}}}
}

// Buttons flattens the menu rows in display order
func (m *Menu) Buttons() []Button {
	if m == nil {
		return nil
	}
	var buttons []Button
	for _, row := range m.Rows {
		buttons = append(buttons, row...)
	}
	return buttons
}
