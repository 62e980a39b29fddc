package repository

import (
	"context"
	"errors"

	"atelier/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrImageNotFound is returned when a gallery image row does not exist.
var ErrImageNotFound = errors.New("product image not found")

// ErrVideoNotFound is returned when a product has no video row.
var ErrVideoNotFound = errors.New("product video not found")

// ErrAssetConflict is returned when an insert loses against the unique
// constraints backing the cardinality rules: (product_id, display_order)
// for images, product_id for videos. It surfaces check-then-act races.
var ErrAssetConflict = errors.New("asset conflict")

// ImageRepository defines persistence operations for gallery images.
type ImageRepository interface {
	// FindByID retrieves a single image row.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)

	// FindByProduct retrieves all images of a product, display order ascending.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error)

	// CountByProduct returns how many images a product currently holds.
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Create persists a new image row.
	Create(ctx context.Context, image *entity.ProductImage) error

	// UpdateOrder moves one image to a new display order.
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error

	// Delete removes one image row.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct removes every image row of a product (cascade delete).
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

// VideoRepository defines persistence operations for product videos.
// At most one video row exists per product.
type VideoRepository interface {
	// FindByID retrieves a single video row.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductVideo, error)

	// FindByProduct retrieves the video of a product, or ErrVideoNotFound.
	FindByProduct(ctx context.Context, productID uuid.UUID) (*entity.ProductVideo, error)

	// Create persists a new video row.
	Create(ctx context.Context, video *entity.ProductVideo) error

	// Delete removes one video row.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProduct removes the video row of a product (cascade delete).
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
