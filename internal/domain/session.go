package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Step is the position of a conversation in the trade log flow
type Step string

const (
	// StepAddSkin - idle, or between skins
	StepAddSkin Step = "addSkin"
	// StepSearchSkin - waiting for a query or a result selection
	StepSearchSkin Step = "searchSkin"
	// StepSelectWear - waiting for the wear of CurrentSkin
	StepSelectWear Step = "selectWear"
	// StepEnterPrice - waiting for the price text
	StepEnterPrice Step = "enterPrice"
	// StepSelectAccount - waiting for the account selection
	StepSelectAccount Step = "selectAccount"
)

// SearchState holds the last query and its ranked results
type SearchState struct {
	Query     string
	Results   []Skin
	PageIndex int
}

// TradeSession represents the trade log conversation of a LINE user
type TradeSession struct {
	UserID       string           // LINE user identifier
	Step         Step             // Current position in the flow
	PendingSkins []Skin           // Skins added to the log in progress
	CurrentSkin  *Skin            // Selected skin still missing a wear
	Price        *decimal.Decimal // Price entered for the log
	Search       SearchState      // Search results for paging and selection
	AccountPage  int              // Page shown in the account menu
	LastActivity time.Time        // For idle expiry
}

// NewTradeSession creates a session at the initial step
func NewTradeSession(userID string, now time.Time) *TradeSession {
	return &TradeSession{
		UserID:       userID,
		Step:         StepAddSkin,
		PendingSkins: make([]Skin, 0),
		LastActivity: now,
	}
}

// IsExpired checks if the session has been idle longer than timeout
func (s *TradeSession) IsExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// AddSkin appends a completed skin and returns to the add step
func (s *TradeSession) AddSkin(skin Skin) {
	s.PendingSkins = append(s.PendingSkins, skin)
	s.CurrentSkin = nil
	s.Step = StepAddSkin
}

// StartSearch clears previous results and waits for a query
func (s *TradeSession) StartSearch() {
	s.Search = SearchState{}
	s.Step = StepSearchSkin
}

// Finish moves to price entry. Fails with ErrEmptyLog and leaves the
// session untouched when no skins were added.
func (s *TradeSession) Finish() error {
	if len(s.PendingSkins) == 0 {
		return ErrEmptyLog
	}
	s.Step = StepEnterPrice
	return nil
}

// SetPrice stores a positive price and moves to account selection
func (s *TradeSession) SetPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrValidation
	}
	s.Price = &price
	s.AccountPage = 0
	s.Step = StepSelectAccount
	return nil
}

// CanCommit reports whether the log is complete enough to be written
func (s *TradeSession) CanCommit() bool {
	return len(s.PendingSkins) > 0 && s.Price != nil && s.Price.IsPositive()
}

// Reset returns the session to its initial state, keeping the user
func (s *TradeSession) Reset(now time.Time) {
	*s = *NewTradeSession(s.UserID, now)
}
