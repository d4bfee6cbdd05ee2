package model

import "github.com/google/uuid"

// User identifies the authenticated user acting on the system. Every
// published event records the user's ID as its publisher.
type User struct {
	ID    uuid.UUID
	Email string
}
