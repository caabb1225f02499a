package output

import "skinlog-bot/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for managing trade log sessions.
// Sessions hold the conversation state per LINE user. Implementations must
// be thread-safe for concurrent access.
type SessionStore interface {
	// GetOrCreate returns the session for a LINE user ID, creating a fresh
	// one at the initial step when absent. LastActivity is refreshed.
	// Every call first sweeps all sessions idle past the timeout.
	GetOrCreate(userID string) *domain.TradeSession

	// Reset re-initializes the user's session to the initial step.
	Reset(userID string) *domain.TradeSession

	// Sweep removes every expired session and returns how many were removed.
	Sweep() int

	// Lock serializes event handling for one user ID. The returned
	// function releases the lock.
	Lock(userID string) (unlock func())
}
