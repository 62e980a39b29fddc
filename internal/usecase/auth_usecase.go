package usecase

import (
	"context"

	"atelier/internal/domain/entity"
)

// LoginInput defines the credentials posted by the admin login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns the session token and the authenticated profile.
// The delivery layer turns the token into an HttpOnly cookie.
type LoginOutput struct {
	Token   string
	Profile *entity.Profile
}

// AuthUsecase defines the admin authentication operations. Logout is
// purely a cookie expiry and lives in the delivery layer.
type AuthUsecase interface {
	// Login verifies credentials and the admin role, then issues a session
	// token. Non-admin profiles are refused without a token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
