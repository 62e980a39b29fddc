package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when no profile row matches. The access
// gate treats a missing profile record the same as "not admin".
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines operations for principal profiles. It is the
// second half of the admission check: session token resolves to an ID,
// this repository resolves the ID to a role.
type ProfileRepository interface {
	// FindByID retrieves a profile by its principal ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindByEmail retrieves a profile by its login email.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// Create persists a new profile row (used by the createadmin tool).
	Create(ctx context.Context, profile *entity.Profile) error
}
