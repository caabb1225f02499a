package http

import (
	"context"

	"skinlog-bot/internal/domain"

	"github.com/shopspring/decimal"
)

// MockWebhookService implements input.LineWebhookService for testing
type MockWebhookService struct {
	HandleWebhookFunc func(ctx context.Context, request domain.LineWebhookRequest) error

	// Captured values for assertions
	Requests []domain.LineWebhookRequest
}

func (m *MockWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	m.Requests = append(m.Requests, request)
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, request)
	}
	return nil
}

// MockTradeLogService implements input.TradeLogService for testing
type MockTradeLogService struct {
	Last  *domain.LastLog
	Stats *domain.TradeStatistics
	Rows  []domain.TradeLogRow
	Err   error

	// Captured values for assertions
	RecentLimits []int
}

func (m *MockTradeLogService) Append(ctx context.Context, skins []domain.Skin, price decimal.Decimal, account string) error {
	return m.Err
}

func (m *MockTradeLogService) LastLog(ctx context.Context) (*domain.LastLog, error) {
	return m.Last, m.Err
}

func (m *MockTradeLogService) Statistics(ctx context.Context) (*domain.TradeStatistics, error) {
	return m.Stats, m.Err
}

func (m *MockTradeLogService) Recent(ctx context.Context, n int) ([]domain.TradeLogRow, error) {
	m.RecentLimits = append(m.RecentLimits, n)
	if m.Err != nil {
		return nil, m.Err
	}
	if n < len(m.Rows) {
		return m.Rows[:n], nil
	}
	return m.Rows, nil
}

// MockPinger implements output.Pinger for testing
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Err
}
