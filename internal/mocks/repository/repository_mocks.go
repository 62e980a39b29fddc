// Package repository contains hand-written testify mocks for the domain
// repository interfaces, plus a pass-through transaction manager so use
// case tests can run their closures against the mocks directly.
package repository

import (
	"context"
	"testing"

	"atelier/internal/domain/entity"
	"atelier/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StubFactory hands out the mock repositories inside a transaction closure.
type StubFactory struct {
	Products *MockProductRepository
	Images   *MockImageRepository
	Videos   *MockVideoRepository
	Profiles *MockProfileRepository
}

func (f *StubFactory) ProductRepo() repository.ProductRepository { return f.Products }
func (f *StubFactory) ImageRepo() repository.ImageRepository     { return f.Images }
func (f *StubFactory) VideoRepo() repository.VideoRepository     { return f.Videos }
func (f *StubFactory) ProfileRepo() repository.ProfileRepository { return f.Profiles }

// StubTxManager runs every transaction closure directly against the
// factory. Commit and rollback semantics are out of scope for unit tests.
type StubTxManager struct {
	Factory *StubFactory
}

// NewStubTxManager builds a transaction manager with fresh mocks.
func NewStubTxManager(t *testing.T) *StubTxManager {
	return &StubTxManager{
		Factory: &StubFactory{
			Products: NewMockProductRepository(t),
			Images:   NewMockImageRepository(t),
			Videos:   NewMockVideoRepository(t),
			Profiles: NewMockProfileRepository(t),
		},
	}
}

func (m *StubTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// MockProductRepository mocks repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindPublished(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.StatusCounts), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockImageRepository mocks repository.ImageRepository.
type MockImageRepository struct {
	mock.Mock
}

func NewMockImageRepository(t *testing.T) *MockImageRepository {
	m := &MockImageRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ProductImage), args.Error(1)
}

func (m *MockImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.ProductImage), args.Error(1)
}

func (m *MockImageRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) Create(ctx context.Context, image *entity.ProductImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *MockImageRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	return m.Called(ctx, id, order).Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockImageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return m.Called(ctx, productID).Error(0)
}

// MockVideoRepository mocks repository.VideoRepository.
type MockVideoRepository struct {
	mock.Mock
}

func NewMockVideoRepository(t *testing.T) *MockVideoRepository {
	m := &MockVideoRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductVideo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ProductVideo), args.Error(1)
}

func (m *MockVideoRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*entity.ProductVideo, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ProductVideo), args.Error(1)
}

func (m *MockVideoRepository) Create(ctx context.Context, video *entity.ProductVideo) error {
	return m.Called(ctx, video).Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVideoRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return m.Called(ctx, productID).Error(0)
}

// MockProfileRepository mocks repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
