package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TradeLogColumns is the number of cells in a trade log row:
// date, skin name, wear, price, reserved, account.
const TradeLogColumns = 6

// NoPreviousLogs is shown when the trade log is empty
const NoPreviousLogs = "No previous logs"

// NotAvailable is reported for statistics over an empty log
const NotAvailable = "N/A"

// TradeLogRow is one row of the trade log sheet
type TradeLogRow struct {
	Date     string `json:"date"`
	SkinName string `json:"skin_name"`
	Wear     string `json:"wear"`
	Price    string `json:"price"`
	Reserved string `json:"-"`
	Account  string `json:"account"`
}

// Cells returns the row in sheet column order
func (r TradeLogRow) Cells() []string {
	return []string{r.Date, r.SkinName, r.Wear, r.Price, r.Reserved, r.Account}
}

// TradeLogRowFromCells decodes a sheet row. Missing trailing cells are empty.
func TradeLogRowFromCells(cells []string) TradeLogRow {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	return TradeLogRow{
		Date:     cell(0),
		SkinName: cell(1),
		Wear:     cell(2),
		Price:    cell(3),
		Reserved: cell(4),
		Account:  cell(5),
	}
}

// IsHeader reports whether the row is the sheet's column header
func (r TradeLogRow) IsHeader() bool {
	return strings.EqualFold(r.Date, "date")
}

// PriceValue parses the price cell, treating missing or non-numeric as zero
func (r TradeLogRow) PriceValue() decimal.Decimal {
	p, err := decimal.NewFromString(strings.TrimPrefix(r.Price, "$"))
	if err != nil {
		return decimal.Zero
	}
	return p
}

// LastLog groups the rows sharing the latest date
type LastLog struct {
	Date    string `json:"date"`
	Items   []Skin `json:"items"`
	Price   string `json:"price"`
	Account string `json:"account"`
}

// TradeStatistics aggregates the whole trade log
type TradeStatistics struct {
	TotalTrades     int    `json:"total_trades"`
	TotalSpent      string `json:"total_spent"`
	MostTradedSkin  string `json:"most_traded_skin"`
	MostUsedAccount string `json:"most_used_account"`
}
