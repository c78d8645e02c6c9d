package storage

import (
	"sync"
	"time"

	"painel-etl/internal/engine"
)

// MemoryStore holds the normalized row collection of every dashboard
// for the current session. Collections are replaced wholesale on each
// ingest, never mutated in place, so a reader can never observe a
// partially updated set.
type MemoryStore struct {
	mu         sync.RWMutex
	rows       map[string][]engine.Row
	fallbacks  map[string]int
	began      map[string]uint64
	applied    map[string]uint64
	lastIngest time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:      make(map[string][]engine.Row),
		fallbacks: make(map[string]int),
		began:     make(map[string]uint64),
		applied:   make(map[string]uint64),
	}
}

// Begin marks the start of a fetch for a dashboard and returns its
// generation. Complete rejects results from any fetch that is no longer
// the newest one begun, so a slow response can never overwrite data a
// later request already replaced (last request wins).
func (s *MemoryStore) Begin(dashboard string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.began[dashboard]++
	return s.began[dashboard]
}

// Complete stores the fetched rows if the generation is still current.
// Returns false when the result was stale and discarded.
func (s *MemoryStore) Complete(dashboard string, generation uint64, rows []engine.Row, fallbacks int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation < s.began[dashboard] || generation <= s.applied[dashboard] {
		return false
	}

	s.applied[dashboard] = generation
	s.rows[dashboard] = rows
	s.fallbacks[dashboard] = fallbacks
	s.lastIngest = time.Now()
	return true
}

// Rows returns a copy of a dashboard's collection.
func (s *MemoryStore) Rows(dashboard string) []engine.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]engine.Row, len(s.rows[dashboard]))
	copy(rows, s.rows[dashboard])
	return rows
}

// Fallbacks returns how many rows of the dashboard's last ingest needed
// full sentinel fallback.
func (s *MemoryStore) Fallbacks(dashboard string) (records, fallbacks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows[dashboard]), s.fallbacks[dashboard]
}

func (s *MemoryStore) LastIngest() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastIngest
}

func (s *MemoryStore) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rows := range s.rows {
		if len(rows) > 0 {
			return true
		}
	}
	return false
}
