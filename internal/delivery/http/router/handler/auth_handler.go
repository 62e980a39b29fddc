package handler

import (
	"log/slog"
	"net/http"

	"atelier/config"
	"atelier/internal/delivery/http/middleware"
	"atelier/internal/delivery/http/response"
	"atelier/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the admin sign-in handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

// loginResponse is the profile view returned after sign-in. The password
// hash never appears in any response.
type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login handles the admin login request and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Email and password are required")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	middleware.SetSessionCookie(c, h.cfg, output.Token)

	return response.Success(c, http.StatusOK, loginResponse{
		ID:    output.Profile.ID.String(),
		Email: output.Profile.Email,
		Role:  output.Profile.Role.String(),
	}, "Login successful")
}

// Logout expires the session cookie. Tokens are stateless so there is
// nothing to revoke server side.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cfg)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}
