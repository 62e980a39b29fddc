// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"atelier/internal/domain/entity"

	"github.com/google/uuid"
)

// ReadScope separates the public catalogue from the admin console.
// Public reads never see non-published rows.
type ReadScope int

const (
	// ScopePublic hides everything except published products.
	ScopePublic ReadScope = iota
	// ScopeAdmin sees every product regardless of status.
	ScopeAdmin
)

const (
	// DefaultFeaturedLimit bounds ListFeatured when the caller passes no limit.
	DefaultFeaturedLimit = 6

	// MaxFeaturedLimit caps ListFeatured no matter what the caller asks for.
	MaxFeaturedLimit = 24
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product.
// Bilingual names and descriptions are all mandatory.
type CreateProductInput struct {
	NameEN        string `json:"name_en"`
	NameBG        string `json:"name_bg"`
	DescriptionEN string `json:"description_en"`
	DescriptionBG string `json:"description_bg"`
	Category      string `json:"category"`
	WoodType      string `json:"wood_type"`
	Status        string `json:"status"`   // Defaults to hidden when blank.
	Featured      bool   `json:"featured"`
}

// UpdateProductInput carries a partial update; nil fields stay untouched.
type UpdateProductInput struct {
	NameEN        *string `json:"name_en"`
	NameBG        *string `json:"name_bg"`
	DescriptionEN *string `json:"description_en"`
	DescriptionBG *string `json:"description_bg"`
	Category      *string `json:"category"`
	WoodType      *string `json:"wood_type"`
	Status        *string `json:"status"`
	Featured      *bool   `json:"featured"`
}

// --- Output DTOs ---

// ProductStats feeds the admin dashboard counters.
type ProductStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Hidden    int64 `json:"hidden"`
	Sold      int64 `json:"sold"`
}

// CatalogueUsecase defines the product lifecycle operations.
// This is the contract that the delivery layer depends on.
type CatalogueUsecase interface {
	// ListAll returns every product, any status, newest-created first.
	// Admin views only.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// ListPublished returns published products, newest-created first.
	ListPublished(ctx context.Context) ([]*entity.Product, error)

	// ListFeatured returns published AND featured products, newest-created
	// first, bounded to limit.
	ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// GetByID returns one product with nested gallery and video. In
	// ScopePublic a non-published match reads as not found.
	GetByID(ctx context.Context, id uuid.UUID, scope ReadScope) (*entity.Product, error)

	// Create validates mandatory fields and enum membership, then inserts.
	// Returns the new identifier.
	Create(ctx context.Context, input *CreateProductInput) (uuid.UUID, error)

	// Update merges the provided fields onto the existing row.
	Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) error

	// SetStatus performs the narrow status-only update.
	SetStatus(ctx context.Context, id uuid.UUID, status entity.Status) error

	// Delete removes the product and cascades its images, video and blobs.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats aggregates product counts for the dashboard.
	Stats(ctx context.Context) (*ProductStats, error)
}
