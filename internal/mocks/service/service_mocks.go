// Package service contains hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"io"
	"testing"

	"atelier/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBlobStore mocks service.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func NewMockBlobStore(t *testing.T) *MockBlobStore {
	m := &MockBlobStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockViewCache mocks service.ViewCache.
type MockViewCache struct {
	mock.Mock
}

func NewMockViewCache(t *testing.T) *MockViewCache {
	m := &MockViewCache{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockViewCache) Invalidate(ctx context.Context, views ...string) error {
	// Variadic args are matched as one slice to keep expectations simple.
	return m.Called(ctx, views).Error(0)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockSessionResolver mocks service.SessionResolver.
type MockSessionResolver struct {
	mock.Mock
}

func NewMockSessionResolver(t *testing.T) *MockSessionResolver {
	m := &MockSessionResolver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionResolver) Issue(principalID uuid.UUID) (string, error) {
	args := m.Called(principalID)

	return args.String(0), args.Error(1)
}

func (m *MockSessionResolver) Resolve(token string) (*service.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Session), args.Error(1)
}
