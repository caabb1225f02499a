package input

import (
	"context"

	"skinlog-bot/internal/domain"

	"github.com/shopspring/decimal"
)

// TradeLogService interface - Input port (use case)
// Defines what the application can do with the trade log
type TradeLogService interface {
	// Append writes one row per skin, sharing today's date, the price and the account.
	Append(ctx context.Context, skins []domain.Skin, price decimal.Decimal, account string) error

	// LastLog returns the rows sharing the latest date, or nil when the log is empty.
	LastLog(ctx context.Context) (*domain.LastLog, error)

	// Statistics aggregates the whole log.
	Statistics(ctx context.Context) (*domain.TradeStatistics, error)

	// Recent returns up to n rows, most recent first.
	Recent(ctx context.Context, n int) ([]domain.TradeLogRow, error)
}
