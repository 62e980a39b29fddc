package middleware

import (
	"net/http"
	"time"

	"atelier/config"
	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccessGate guards the admin area. Admission is two independent steps:
// the session token resolves to a principal ID, then a fresh profile
// lookup decides the role. The token itself never carries authority.
type AccessGate struct {
	sessions service.SessionResolver
	profiles repository.ProfileRepository
	cfg      *config.Config
}

// NewAccessGate is the constructor for AccessGate.
func NewAccessGate(sessions service.SessionResolver, profiles repository.ProfileRepository, cfg *config.Config) *AccessGate {
	return &AccessGate{sessions: sessions, profiles: profiles, cfg: cfg}
}

// Admit is the middleware applied to every admin route except login.
// Requests without a valid admin session are redirected to the login
// page; API clients get the same redirect and follow it or not.
func (g *AccessGate) Admit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		profile, ok := g.resolvePrincipal(c)
		if !ok || !profile.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}

		ctx := deliverycontext.WithPrincipal(c.Request().Context(), profile)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RedirectAuthenticated wraps the login routes: an already signed-in
// admin lands on the dashboard instead of the login form.
func (g *AccessGate) RedirectAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if profile, ok := g.resolvePrincipal(c); ok && profile.IsAdmin() {
			return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		}

		return next(c)
	}
}

// resolvePrincipal reads the session cookie, resolves it and loads the
// profile behind it. Sliding renewal is applied to the response whenever
// the resolver re-issued the token, regardless of the admission outcome.
func (g *AccessGate) resolvePrincipal(c echo.Context) (profile *entity.Profile, ok bool) {
	cookie, err := c.Cookie(g.cfg.Session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	session, err := g.sessions.Resolve(cookie.Value)
	if err != nil {
		if !errors.Is(err, service.ErrSessionInvalid) {
			c.Logger().Error(err)
		}

		return nil, false
	}

	if session.RenewedToken != "" {
		SetSessionCookie(c, g.cfg, session.RenewedToken)
	}

	found, err := g.profiles.FindByID(c.Request().Context(), session.PrincipalID)
	if err != nil {
		// A deleted profile invalidates an otherwise valid token.
		return nil, false
	}

	return found, true
}

// SetSessionCookie writes the HttpOnly session cookie on the response.
func SetSessionCookie(c echo.Context, cfg *config.Config, token string) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie, signing the admin out.
func ClearSessionCookie(c echo.Context, cfg *config.Config) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
