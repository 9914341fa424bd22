// internal/store/memory.go
//
// In-memory memo of search verdicts.
// Exhaustive searches over the full answer set are deterministic for a given
// pair of word pools and budget, so the API computes each one at most once.
//
// Characteristics:
//   - Verdicts are keyed by pool fingerprint, budget and whether a plan was requested.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Errors are returned for missing keys on Get().

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("not found")

// Store defines the interface for memoized verdicts.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or replaces a verdict.
	Save(ctx context.Context, key string, v solver.Verdict) error

	// Get retrieves a verdict by key.
	// Returns ErrNotFound if the key is unknown.
	Get(ctx context.Context, key string) (solver.Verdict, error)
}

// Key builds the memo key of a full-answer-set search.
func Key(fingerprint string, budget int, plan bool) string {
	return fmt.Sprintf("%s/%d/%t", fingerprint, budget, plan)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex              // guards verdicts map
	verdicts map[string]solver.Verdict // keyed by Key()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{verdicts: make(map[string]solver.Verdict)}
}

// Save adds or updates the verdict in the map.
func (m *memory) Save(ctx context.Context, key string, v solver.Verdict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts[key] = v
	return nil
}

// Get looks up a verdict by key.
func (m *memory) Get(ctx context.Context, key string) (solver.Verdict, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.verdicts[key]; ok {
		return v, nil
	}
	return solver.Verdict{}, ErrNotFound
}
