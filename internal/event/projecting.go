package event

import (
	"fmt"
	"sync"
)

// Projection is a fold over the event stream. Apply must ignore event
// kinds it does not recognize.
type Projection interface {
	Apply(e Event) error
}

// ProjectingStore decorates a Store so every published event is fanned
// out to a set of projections. The inner store is appended to first,
// so Has and CurrentVersion observe the new fact before any projection
// does. Fan-out is synchronous and in registration order.
//
// A failing projection aborts the remaining fan-out and surfaces the
// error; the event stays committed in the inner store and no
// compensation runs. One mutex serializes publish and fan-out, since
// the projection folds are not safe under concurrent Apply.
type ProjectingStore struct {
	mu          sync.Mutex
	inner       Store
	projections []Projection
}

// NewProjectingStore wraps inner with the given projections.
func NewProjectingStore(inner Store, projections ...Projection) *ProjectingStore {
	return &ProjectingStore{inner: inner, projections: projections}
}

// Publish appends to the inner store, then applies the event to each
// projection in order.
func (s *ProjectingStore) Publish(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.inner.Publish(e); err != nil {
		return err
	}
	for _, p := range s.projections {
		if err := p.Apply(e); err != nil {
			return fmt.Errorf("applying projection %T: %w", p, err)
		}
	}
	return nil
}

// Has delegates to the inner store. Projections are never consulted
// for existence checks.
func (s *ProjectingStore) Has(aggregateID string) bool {
	return s.inner.Has(aggregateID)
}

// CurrentVersion delegates to the inner store.
func (s *ProjectingStore) CurrentVersion(aggregateID string) int {
	return s.inner.CurrentVersion(aggregateID)
}
