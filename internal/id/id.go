// Package id supplies unique event identifiers.
package id

import "github.com/google/uuid"

// Generator produces one globally unique id per event about to be
// published.
type Generator interface {
	New() uuid.UUID
}

// UUID generates random version-4 UUIDs.
type UUID struct{}

// New returns a fresh random UUID.
func (UUID) New() uuid.UUID { return uuid.New() }
