// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Email is the natural key used for lookup;
// the store enforces its uniqueness. PasswordHash holds the salted bcrypt
// output and must never be serialized to clients.
type User struct {
	ID           uuid.UUID // Store-generated identifier, immutable once assigned.
	Email        string    // Unique across all users.
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time // Set at creation, immutable.
	UpdatedAt    time.Time // Touched on every profile mutation.
}
