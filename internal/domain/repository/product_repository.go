// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// StatusCounts aggregates products per status for the admin dashboard.
type StatusCounts struct {
	Total     int64
	Published int64
	Hidden    int64
	Sold      int64
}

// ProductRepository defines the standard operations for product persistence.
// The application layer will depend on this interface, not the concrete implementation.
type ProductRepository interface {
	// FindAll retrieves every product regardless of status, newest-created first.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindPublished retrieves only published products, newest-created first.
	FindPublished(ctx context.Context) ([]*entity.Product, error)

	// FindFeatured retrieves published AND featured products, newest-created
	// first, bounded to limit.
	FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// FindByID retrieves a single product with its gallery images sorted by
	// display order ascending and its video when present.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CountByStatus aggregates product counts for the dashboard.
	CountByStatus(ctx context.Context) (*StatusCounts, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product row.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateStatus performs the narrow status-only update used by the inline
	// admin controls.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status) error

	// Delete removes the product row. Child image/video rows are removed by
	// the caller within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
