package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"skinlog-bot/internal/domain"
)

// Mock implementations for testing

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc  func(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	// Captured values for assertions
	ReplyRequests []domain.LineReplyMessageRequest
	PushRequests  []domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.ReplyRequests = append(m.ReplyRequests, request)
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.PushRequests = append(m.PushRequests, request)
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

// MockConversation implements input.Conversation for testing
type MockConversation struct {
	HandleFunc func(ctx context.Context, event domain.UserEvent) domain.Reply

	// Captured values for assertions
	Events []domain.UserEvent
}

func (m *MockConversation) Handle(ctx context.Context, event domain.UserEvent) domain.Reply {
	m.Events = append(m.Events, event)
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, event)
	}
	return domain.TextReply("ok", nil)
}

func (m *MockConversation) Welcome() domain.Reply {
	return domain.TextReply("welcome", nil)
}

// MockRowStore implements output.RowStore over in-memory sheets
type MockRowStore struct {
	mu sync.Mutex

	Sheets    map[string][][]string
	GetErr    error
	AppendErr error

	GetCalls    int
	AppendCalls int
}

func NewMockRowStore() *MockRowStore {
	return &MockRowStore{Sheets: make(map[string][][]string)}
}

func (m *MockRowStore) GetRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	rows := m.Sheets[sheetID+"!"+rangeSpec]
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *MockRowStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	key := sheetID + "!" + rangeSpec
	m.Sheets[key] = append(m.Sheets[key], rows...)
	return nil
}

func (m *MockRowStore) Rows(sheetID, rangeSpec string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sheets[sheetID+"!"+rangeSpec]
}

// MockSessionStore implements output.SessionStore over a plain map
type MockSessionStore struct {
	Sessions map[string]*domain.TradeSession

	ResetCalls []string
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{Sessions: make(map[string]*domain.TradeSession)}
}

func (m *MockSessionStore) GetOrCreate(userID string) *domain.TradeSession {
	session, ok := m.Sessions[userID]
	if !ok {
		session = domain.NewTradeSession(userID, testNow())
		m.Sessions[userID] = session
	}
	return session
}

func (m *MockSessionStore) Reset(userID string) *domain.TradeSession {
	m.ResetCalls = append(m.ResetCalls, userID)
	session := domain.NewTradeSession(userID, testNow())
	m.Sessions[userID] = session
	return session
}

func (m *MockSessionStore) Sweep() int { return 0 }

func (m *MockSessionStore) Lock(userID string) func() { return func() {} }

var errSheetDown = errors.New("sheets api unavailable")

func testNow() time.Time {
	return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
}
