package store

import (
	"sort"
	"sync"
	"time"

	"github.com/taylormck/japanese-properties-api/internal/property"
)

// Store is a thread-safe in-memory property store, keyed by record id.
// The whole record set is replaced atomically on each successful ingest;
// individual records are never mutated in place.
type Store struct {
	mu         sync.RWMutex
	data       map[uint64]property.Property
	generation uint64
	replacedAt time.Time
	now        func() time.Time // injectable for deterministic tests
}

// New creates an empty Store at generation zero.
func New() *Store {
	return &Store{
		data: make(map[uint64]property.Property),
		now:  time.Now,
	}
}

// ReplaceAll discards the current generation and installs records as the new
// one. An empty slice is a valid replacement and clears the store. Returns
// the new generation number. Concurrent calls serialize; the last to acquire
// the lock wins.
func (s *Store) ReplaceAll(records []property.Property) uint64 {
	data := make(map[uint64]property.Property, len(records))
	for _, p := range records {
		data[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.generation++
	s.replacedAt = s.now()
	return s.generation
}

// Get returns the record with the given id from the current generation.
func (s *Store) Get(id uint64) (property.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[id]
	return p, ok
}

// All returns a snapshot of the current generation in ascending id order.
func (s *Store) All() []property.Property {
	s.mu.RLock()
	out := make([]property.Property, 0, len(s.data))
	for _, p := range s.data {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of records in the current generation.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Generation returns the current generation number and the time it was
// installed. Generation zero means no ingest has completed yet.
func (s *Store) Generation() (uint64, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, s.replacedAt
}
