package application

import (
	"context"
	"fmt"
	"time"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/input"
	"skinlog-bot/internal/ports/output"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultRecentLimit is the number of trades Recent returns when asked for none
const DefaultRecentLimit = 5

// Compile-time check to ensure TradeLogService implements the input port
var _ input.TradeLogService = (*TradeLogService)(nil)

// TradeLogService struct - Application service writing and reading the trade log sheet
type TradeLogService struct {
	store     output.RowStore
	sheetID   string
	rangeSpec string
	location  *time.Location
	now       func() time.Time
}

// NewTradeLogService func - Creates new trade log service
func NewTradeLogService(store output.RowStore, sheetID, rangeSpec string, location *time.Location, now func() time.Time) *TradeLogService {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &TradeLogService{
		store:     store,
		sheetID:   sheetID,
		rangeSpec: rangeSpec,
		location:  location,
		now:       now,
	}
}

// Append func - Use case: write one row per skin with today's date.
// The store gives no partial-write guarantee: a failed append may leave
// some rows written.
func (s *TradeLogService) Append(ctx context.Context, skins []domain.Skin, price decimal.Decimal, account string) error {
	if len(skins) == 0 {
		return domain.ErrEmptyLog
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}

	date := domain.TradeDate(s.now(), s.location)
	rows := make([][]string, 0, len(skins))
	for _, skin := range skins {
		row := domain.TradeLogRow{
			Date:     date,
			SkinName: skin.Name,
			Wear:     string(skin.Wear),
			Price:    price.StringFixed(2),
			Account:  account,
		}
		rows = append(rows, row.Cells())
	}

	if err := s.store.AppendRows(ctx, s.sheetID, s.rangeSpec, rows); err != nil {
		logrus.Errorf("Failed to append %d trade rows: %v", len(rows), err)
		return fmt.Errorf("%w: %v", domain.ErrUpstreamWrite, err)
	}

	logrus.WithFields(logrus.Fields{
		"rows":    len(rows),
		"account": account,
		"date":    date,
	}).Info("Trade log appended")
	return nil
}

// LastLog func - Use case: the rows sharing the latest date, nil when there are none
func (s *TradeLogService) LastLog(ctx context.Context) (*domain.LastLog, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	var (
		latest time.Time
		found  bool
	)
	for _, row := range rows {
		if d, ok := domain.ParseTradeDate(row.Date); ok && (!found || d.After(latest)) {
			latest, found = d, true
		}
	}
	if !found {
		return nil, nil
	}

	var last *domain.LastLog
	for _, row := range rows {
		d, ok := domain.ParseTradeDate(row.Date)
		if !ok || !sameDay(d, latest) {
			continue
		}
		if last == nil {
			last = &domain.LastLog{Date: row.Date, Price: row.Price, Account: row.Account}
		}
		last.Items = append(last.Items, domain.Skin{Name: row.SkinName, Wear: domain.Wear(row.Wear)})
	}
	return last, nil
}

// Statistics func - Use case: aggregate counts and totals over the whole log
func (s *TradeLogService) Statistics(ctx context.Context) (*domain.TradeStatistics, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	skins := newCounter()
	accounts := newCounter()
	for _, row := range rows {
		total = total.Add(row.PriceValue())
		skins.add(row.SkinName)
		accounts.add(row.Account)
	}

	return &domain.TradeStatistics{
		TotalTrades:     len(rows),
		TotalSpent:      total.StringFixed(2),
		MostTradedSkin:  skins.top(),
		MostUsedAccount: accounts.top(),
	}, nil
}

// Recent func - Use case: up to n rows, most recent first
func (s *TradeLogService) Recent(ctx context.Context, n int) ([]domain.TradeLogRow, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	recent := make([]domain.TradeLogRow, 0, min(n, len(rows)))
	for i := len(rows) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, rows[i])
	}
	return recent, nil
}

// rows reads the log, skipping the header and blank rows
func (s *TradeLogService) rows(ctx context.Context) ([]domain.TradeLogRow, error) {
	cells, err := s.store.GetRange(ctx, s.sheetID, s.rangeSpec)
	if err != nil {
		logrus.Errorf("Failed to read trade log: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	rows := make([]domain.TradeLogRow, 0, len(cells))
	for _, c := range cells {
		row := domain.TradeLogRowFromCells(c)
		if row.IsHeader() || (row.Date == "" && row.SkinName == "") {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// counter tracks frequencies, remembering first-seen order for ties
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if key == "" {
		return
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top() string {
	best, bestCount := domain.NotAvailable, 0
	for _, key := range c.order {
		if c.counts[key] > bestCount {
			best, bestCount = key, c.counts[key]
		}
	}
	return best
}
