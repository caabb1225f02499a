package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skinlog-bot/internal/ports/output"
	gormdriver "skinlog-bot/pkg/database_driver/gorm"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SheetRow is one stored row of a tab, mirroring a spreadsheet row
type SheetRow struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	RowID     uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	SheetID   string         `gorm:"index:idx_sheet_rows_tab;not null"`
	Tab       string         `gorm:"index:idx_sheet_rows_tab;not null"`
	Cells     pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt time.Time
}

// TableName overrides the gorm table name
func (SheetRow) TableName() string {
	return "sheet_rows"
}

// BeforeCreate assigns the row id
func (r *SheetRow) BeforeCreate(tx *gorm.DB) error {
	if r.RowID == uuid.Nil {
		r.RowID = uuid.New()
	}
	return nil
}

// RowStore struct - Secondary/Driven adapter storing sheet rows in PostgreSQL
type RowStore struct {
	dbGorm *gorm.DB
}

// Compile-time checks to ensure RowStore implements the output ports
var (
	_ output.RowStore = (*RowStore)(nil)
	_ output.Pinger   = (*RowStore)(nil)
)

// NewRowStore func - Creates new PostgreSQL row store, migrating the table
func NewRowStore(dbGorm *gorm.DB) (*RowStore, error) {
	logrus.Info("Migrate database ...")
	if err := dbGorm.AutoMigrate(&SheetRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sheet_rows: %w", err)
	}
	return &RowStore{
		dbGorm: dbGorm,
	}, nil
}

// GetRange returns the rows of the range's tab in insertion order.
// Column bounds of the range are not applied.
func (p *RowStore) GetRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	var stored []SheetRow
	err := p.dbGorm.WithContext(ctx).
		Where("sheet_id = ? AND tab = ?", sheetID, TabOf(rangeSpec)).
		Order("id ASC").
		Find(&stored).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	rows := make([][]string, len(stored))
	for i, r := range stored {
		rows[i] = []string(r.Cells)
	}
	return rows, nil
}

// AppendRows inserts all rows in one transaction
func (p *RowStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	tab := TabOf(rangeSpec)
	return p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records := make([]SheetRow, len(rows))
		for i, cells := range rows {
			records[i] = SheetRow{SheetID: sheetID, Tab: tab, Cells: pq.StringArray(cells)}
		}
		if err := tx.Create(&records).Error; err != nil {
			logrus.Errorln(err)
			return err
		}
		return nil
	})
}

// Ping checks the database connection
func (p *RowStore) Ping(ctx context.Context) error {
	return gormdriver.Ping(ctx, p.dbGorm)
}

// TabOf extracts the tab name of an A1 range: "'Trade Log'!A:F" is "Trade Log".
// A range without "!" names the tab itself.
func TabOf(rangeSpec string) string {
	tab := rangeSpec
	if i := strings.LastIndex(rangeSpec, "!"); i >= 0 {
		tab = rangeSpec[:i]
	}
	tab = strings.TrimSpace(tab)
	if len(tab) >= 2 && strings.HasPrefix(tab, "'") && strings.HasSuffix(tab, "'") {
		tab = strings.ReplaceAll(tab[1:len(tab)-1], "''", "'")
	}
	return tab
}
