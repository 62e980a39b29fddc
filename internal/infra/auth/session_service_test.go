package auth

import (
	"testing"
	"time"

	"atelier/config"
	"atelier/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret-at-least-32-bytes-long"
	cfg.Session.TTL = 24 * time.Hour

	return cfg
}

func TestSessionService_IssueAndResolve(t *testing.T) {
	resolver, err := NewSessionResolver(sessionTestConfig())
	require.NoError(t, err)

	principalID := uuid.New()
	token, err := resolver.Issue(principalID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := resolver.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, principalID, session.PrincipalID)

	// A freshly issued token has its full lifetime left; no renewal.
	assert.Empty(t, session.RenewedToken)
}

func TestSessionService_ResolveRejectsGarbage(t *testing.T) {
	resolver, err := NewSessionResolver(sessionTestConfig())
	require.NoError(t, err)

	for _, token := range []string{
		"",
		"not-a-jwt",
		"aaaa.bbbb.cccc",
	} {
		_, err := resolver.Resolve(token)
		assert.ErrorIs(t, err, service.ErrSessionInvalid)
	}
}

func TestSessionService_ResolveRejectsWrongSecret(t *testing.T) {
	resolver, err := NewSessionResolver(sessionTestConfig())
	require.NoError(t, err)

	otherCfg := sessionTestConfig()
	otherCfg.Session.Secret = "a-completely-different-signing-key"
	other, err := NewSessionResolver(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestSessionService_ResolveRejectsExpired(t *testing.T) {
	resolver, err := NewSessionResolver(sessionTestConfig())
	require.NoError(t, err)

	svc := resolver.(*sessionService)
	issuedAt := time.Now().Add(-48 * time.Hour)
	token, err := svc.generate(uuid.New(), issuedAt, issuedAt.Add(24*time.Hour))
	require.NoError(t, err)

	_, err = resolver.Resolve(token)
	assert.ErrorIs(t, err, service.ErrSessionInvalid)
}

func TestSessionService_SlidingRenewal(t *testing.T) {
	resolver, err := NewSessionResolver(sessionTestConfig())
	require.NoError(t, err)

	svc := resolver.(*sessionService)
	principalID := uuid.New()

	// Issued 13 hours ago with a 24h TTL: under half the lifetime remains.
	issuedAt := time.Now().Add(-13 * time.Hour)
	token, err := svc.generate(principalID, issuedAt, issuedAt.Add(24*time.Hour))
	require.NoError(t, err)

	session, err := resolver.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, principalID, session.PrincipalID)
	require.NotEmpty(t, session.RenewedToken)
	assert.NotEqual(t, token, session.RenewedToken)

	// The renewed token resolves on its own and needs no further renewal.
	renewed, err := resolver.Resolve(session.RenewedToken)
	require.NoError(t, err)
	assert.Equal(t, principalID, renewed.PrincipalID)
	assert.Empty(t, renewed.RenewedToken)
}

func TestSessionService_RequiresSecret(t *testing.T) {
	cfg := sessionTestConfig()
	cfg.Session.Secret = ""

	_, err := NewSessionResolver(cfg)
	assert.Error(t, err)
}
