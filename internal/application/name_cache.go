package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DefaultNamesTTL is how long a fetched name list is served without refetching
const DefaultNamesTTL = time.Hour

// NameCache struct - process-wide cache of the skin names sheet
// Concurrent refreshes are tolerated; the last completed fetch wins.
type NameCache struct {
	store     output.RowStore
	sheetID   string
	rangeSpec string
	ttl       time.Duration
	now       func() time.Time

	mu        sync.RWMutex
	skins     []domain.Skin
	fetchedAt time.Time
}

// NewNameCache func - Creates the name cache over the names sheet
func NewNameCache(store output.RowStore, sheetID, rangeSpec string, ttl time.Duration, now func() time.Time) *NameCache {
	if ttl <= 0 {
		ttl = DefaultNamesTTL
	}
	if now == nil {
		now = time.Now
	}
	return &NameCache{
		store:     store,
		sheetID:   sheetID,
		rangeSpec: rangeSpec,
		ttl:       ttl,
		now:       now,
	}
}

// Get returns the cached skins, refetching when stale or forced. A failed
// refetch serves the stale list when there is one; ErrUpstreamFetch is
// returned only when nothing is cached.
func (c *NameCache) Get(ctx context.Context, forceRefresh bool) ([]domain.Skin, error) {
	c.mu.RLock()
	skins, fetchedAt := c.skins, c.fetchedAt
	c.mu.RUnlock()

	if !forceRefresh && !fetchedAt.IsZero() && c.now().Sub(fetchedAt) < c.ttl {
		return skins, nil
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		if len(skins) > 0 {
			logrus.Warnf("Serving %d stale skin names, refresh failed: %v", len(skins), err)
			return skins, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.skins = fresh
	c.fetchedAt = c.now()
	c.mu.Unlock()

	logrus.Infof("Loaded %d skin names from sheet %s", len(fresh), c.sheetID)
	return fresh, nil
}

// Names returns the labels of the cached skins
func (c *NameCache) Names(ctx context.Context, forceRefresh bool) ([]string, error) {
	skins, err := c.Get(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	return skinLabels(skins), nil
}

func (c *NameCache) fetch(ctx context.Context) ([]domain.Skin, error) {
	rows, err := c.store.GetRange(ctx, c.sheetID, c.rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: names sheet: %v", domain.ErrUpstreamFetch, err)
	}

	skins := make([]domain.Skin, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		if skin, ok := domain.SkinFromRow(row); ok {
			skins = append(skins, skin)
		}
	}
	return skins, nil
}

func skinLabels(skins []domain.Skin) []string {
	labels := make([]string, len(skins))
	for i, s := range skins {
		labels[i] = s.Label()
	}
	return labels
}
