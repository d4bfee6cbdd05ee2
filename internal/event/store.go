package event

import "sync"

// Store is an append-only event log keyed by aggregate id. Publish
// performs no validation beyond storage; only the raw log is
// authoritative for existence and version checks.
//
// Handlers that read CurrentVersion and then Publish are not atomic
// against concurrent writers: two callers touching the same aggregate
// can interleave between read and publish, and the last publish wins.
// That is accepted at this system's scale (single local user); a
// stricter variant would need a compare-and-set append.
type Store interface {
	Publish(e Event) error
	Has(aggregateID string) bool
	CurrentVersion(aggregateID string) int
}

// MemoryStore keeps the whole log in memory. A single lock serializes
// appends and guards the version index shared by every request.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	versions map[string]int
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{versions: make(map[string]int)}
}

// Publish appends the event to the log.
func (s *MemoryStore) Publish(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta := e.Meta()
	s.events = append(s.events, e)
	if meta.Version > s.versions[meta.AggregateID] {
		s.versions[meta.AggregateID] = meta.Version
	}
	return nil
}

// Has reports whether at least one event exists for the aggregate.
func (s *MemoryStore) Has(aggregateID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.versions[aggregateID]
	return ok
}

// CurrentVersion returns the highest version recorded for the
// aggregate, or 0 if the aggregate has no events.
func (s *MemoryStore) CurrentVersion(aggregateID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[aggregateID]
}

// Events returns a snapshot of the log in publication order.
func (s *MemoryStore) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
