package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is an authorization label attached to a principal via its profile
// record. Admin is the only recognized privileged role; a principal
// without a profile row has no privilege at all.
type Role string

const (
	// RoleAdmin grants access to the admin console.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return r == RoleAdmin
}

// Profile is the record behind an authenticated principal: who they are
// and what they are allowed to do. The session token only ever carries
// the profile ID; the role is looked up fresh on every admission check.
type Profile struct {
	ID           uuid.UUID
	Email        string
	Role         Role
	PasswordHash string // bcrypt hash; never leaves the backend.
	CreatedAt    time.Time
}

// IsAdmin reports whether this profile may enter the admin console.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
