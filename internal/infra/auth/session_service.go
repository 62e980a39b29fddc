package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"atelier/config"
	"atelier/internal/domain/service"
)

// sessionService is a concrete implementation of the SessionResolver
// interface using the JWT standard. Tokens are stateless; signing out is
// just the delivery layer expiring the cookie.
type sessionService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for a freshly issued token.
}

// NewSessionResolver is the constructor for sessionService.
// It takes configuration values to create a new session resolver instance.
func NewSessionResolver(cfg *config.Config) (service.SessionResolver, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &sessionService{
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
	}, nil
}

// Issue creates a fresh session token for a principal.
func (s *sessionService) Issue(principalID uuid.UUID) (string, error) {
	now := time.Now()

	return s.generate(principalID, now, now.Add(s.ttl))
}

// Resolve validates a token and returns the session it represents. When
// less than half of the lifetime remains, a renewed token is returned
// alongside so the caller can slide the session forward.
func (s *sessionService) Resolve(tokenString string) (*service.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, service.ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, service.ErrSessionInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, service.ErrSessionInvalid
	}
	principalID, err := uuid.Parse(sub)
	if err != nil {
		return nil, service.ErrSessionInvalid
	}

	session := &service.Session{PrincipalID: principalID}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, service.ErrSessionInvalid
	}
	if time.Until(exp.Time) < s.ttl/2 {
		now := time.Now()
		renewed, err := s.generate(principalID, now, now.Add(s.ttl))
		if err != nil {
			// The presented token still verified; renewal is best effort.
			return session, nil
		}
		session.RenewedToken = renewed
	}

	return session, nil
}

// generate is a private helper to create a JWT with specific claims.
func (s *sessionService) generate(principalID uuid.UUID, issuedAt, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": principalID.String(), // Subject (who the token is for)
		"iat": issuedAt.Unix(),      // Issued At
		"exp": expiry.Unix(),        // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}
