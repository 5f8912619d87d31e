// Package domain contains the core data types for the People API.
// This package has zero external dependencies and is imported by every other
// internal package (store, repo, mapper, service, handler).
package domain

import "time"

// Person is the top-level aggregate: it owns at most one Profile and any
// number of Posts. Ownership is one-directional — children never hold a
// pointer back to their Person, only an ID where needed.
type Person struct {
	// ID is assigned by the database on first save. Zero means "not yet
	// persisted"; callers never invent IDs themselves.
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Profile   *Profile  `json:"profile,omitempty"` // nil when no profile is attached
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the personal details attached to exactly one Person.
// It has no independent lifecycle: it is created with its Person and
// removed when its Person is deleted.
type Profile struct {
	ID       int64  `json:"id"`
	Age      int    `json:"age"`
	ShoeSize int    `json:"shoe_size"`
	Bio      string `json:"bio"`
}
