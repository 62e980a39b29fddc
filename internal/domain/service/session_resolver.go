// Package service defines domain-level contracts implemented by the infra layer.
package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrSessionInvalid is returned for missing, malformed, tampered or
// expired session tokens. Callers must treat it as "not authenticated",
// never as a server fault.
var ErrSessionInvalid = errors.New("session token invalid")

// Session is the outcome of resolving a session token. It identifies the
// principal only; authorization always goes through a fresh role lookup.
type Session struct {
	// PrincipalID is the profile ID the token was issued for.
	PrincipalID uuid.UUID

	// RenewedToken is non-empty when the resolver re-issued the token as
	// part of sliding renewal. The caller must apply it to the response
	// regardless of the admission decision.
	RenewedToken string
}

// SessionResolver issues and resolves the opaque tokens carried by the
// admin session cookie.
type SessionResolver interface {
	// Issue creates a fresh session token for a principal.
	Issue(principalID uuid.UUID) (string, error)

	// Resolve validates a token and returns the session it represents.
	// Returns ErrSessionInvalid for anything that does not verify.
	Resolve(token string) (*Session, error)
}
