package memory

import (
	"sync"
	"time"

	"skinlog-bot/internal/domain"
	"skinlog-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DefaultSessionTimeout is the idle time after which a session expires
const DefaultSessionTimeout = time.Hour

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// userEntry holds one user's session and the mutex serializing their events.
// Every field except mu is guarded by the store mutex.
type userEntry struct {
	mu           sync.Mutex
	session      *domain.TradeSession
	lastActivity time.Time
	holders      int
}

// MemorySessionStore struct - Output adapter for in-memory session storage
// A single store mutex guards membership and activity times, so sweeping
// never reads a session another goroutine is mutating. Entries held through
// Lock are never swept.
type MemorySessionStore struct {
	mu      sync.Mutex
	users   map[string]*userEntry
	timeout time.Duration
	now     func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store.
// timeout: idle duration after which sessions expire, DefaultSessionTimeout when zero
// now: clock used for expiry, time.Now when nil
func NewMemorySessionStore(timeout time.Duration, now func() time.Time) *MemorySessionStore {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		users:   make(map[string]*userEntry),
		timeout: timeout,
		now:     now,
	}
}

// GetTimeout returns the configured session timeout duration.
func (m *MemorySessionStore) GetTimeout() time.Duration {
	return m.timeout
}

// GetOrCreate sweeps expired sessions, then returns the user's session,
// creating a fresh one when absent or expired. LastActivity is updated.
func (m *MemorySessionStore) GetOrCreate(userID string) *domain.TradeSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	entry := m.entryLocked(userID)
	if entry.session == nil || now.Sub(entry.lastActivity) > m.timeout {
		entry.session = domain.NewTradeSession(userID, now)
		logrus.Debugf("Created trade session for userID=%s", userID)
	}
	entry.lastActivity = now
	entry.session.LastActivity = now
	return entry.session
}

// Reset re-initializes the user's session in place.
func (m *MemorySessionStore) Reset(userID string) *domain.TradeSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := m.entryLocked(userID)
	entry.session = domain.NewTradeSession(userID, now)
	entry.lastActivity = now
	return entry.session
}

// Sweep deletes every session idle longer than the timeout.
func (m *MemorySessionStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

// Lock acquires the per-user mutex and returns its release function.
func (m *MemorySessionStore) Lock(userID string) func() {
	m.mu.Lock()
	entry := m.entryLocked(userID)
	entry.holders++
	m.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		m.mu.Lock()
		entry.holders--
		m.mu.Unlock()
	}
}

// Len returns the number of users currently tracked.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *MemorySessionStore) entryLocked(userID string) *userEntry {
	entry, ok := m.users[userID]
	if !ok {
		entry = &userEntry{}
		m.users[userID] = entry
	}
	return entry
}

// sweepLocked drops idle entries along with their mutexes. Must hold m.mu.
func (m *MemorySessionStore) sweepLocked(now time.Time) int {
	removed := 0
	for userID, entry := range m.users {
		if entry.holders > 0 {
			continue
		}
		if entry.session == nil || now.Sub(entry.lastActivity) > m.timeout {
			delete(m.users, userID)
			if entry.session != nil {
				removed++
			}
		}
	}
	if removed > 0 {
		logrus.Infof("Swept %d expired trade sessions", removed)
	}
	return removed
}
