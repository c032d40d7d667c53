// Package history keeps an in-memory, append-only log of completed simulations.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rgehrsitz/finbuddy/internal/domain"
)

// DefaultCapacity is used when a store is created with a non-positive capacity.
const DefaultCapacity = 50

// Entry is one completed simulation.
type Entry struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Request   domain.ProjectionRequest `json:"request"`
	Summary   string                   `json:"summary"`
}

// Store is a bounded append-only log safe for concurrent use. When full, the
// oldest entry is dropped.
type Store struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	now      func() time.Time
}

// NewStore creates a store holding at most capacity entries.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Summarize returns the one-line record shown in history lists.
func Summarize(req domain.ProjectionRequest) string {
	return fmt.Sprintf("Monthly: %.0f, annual rate: %.1f%%, years: %d -> completed",
		req.PeriodicContribution, req.AnnualRatePercent, req.HorizonYears)
}

// Record appends a new entry for req and returns it.
func (s *Store) Record(req domain.ProjectionRequest) Entry {
	e := Entry{
		ID:        uuid.New(),
		CreatedAt: s.now(),
		Request:   req,
		Summary:   Summarize(req),
	}
	s.Append(e)
	return e
}

// Append adds e to the log.
func (s *Store) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == s.capacity {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, e)
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}
