// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// This is a lightweight persistence layer for active playthrough sessions;
// finished-playthrough history lives in SQLite, not here.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carbonclash/go-server/internal/game"
)

// Session is one playthrough in progress.
type Session struct {
	ID        string     // Session identifier (UUID).
	OwnerID   string     // User ID or anonymous cookie ID.
	Daily     bool       // True for daily-run sessions.
	Date      string     // Daily date key ("YYYY-MM-DD"); empty for free play.
	StartedAt time.Time  // Creation time (UTC).
	State     game.State // Current game state value.
}

// Store defines the persistence interface for playthrough sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns an error if the session is not found.
	Get(ctx context.Context, id string) (*Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}
