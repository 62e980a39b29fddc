// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents the kind of furniture a product is.
type Category string

const (
	CategoryTable   Category = "table"
	CategoryChair   Category = "chair"
	CategoryCabinet Category = "cabinet"
	CategoryCustom  Category = "custom"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTable, CategoryChair, CategoryCabinet, CategoryCustom:
		return true
	default:
		return false
	}
}

// WoodType represents the wood a product is made of.
type WoodType string

const (
	WoodOak    WoodType = "oak"
	WoodWalnut WoodType = "walnut"
	WoodPine   WoodType = "pine"
	WoodMixed  WoodType = "mixed"
)

// String returns the string representation of the WoodType.
func (w WoodType) String() string {
	return string(w)
}

// IsValid checks if the WoodType is a valid value.
func (w WoodType) IsValid() bool {
	switch w {
	case WoodOak, WoodWalnut, WoodPine, WoodMixed:
		return true
	default:
		return false
	}
}

// Status governs the public visibility of a product. Only published
// products are reachable through public-facing queries.
type Status string

const (
	StatusPublished Status = "published"
	StatusHidden    Status = "hidden"
	StatusSold      Status = "sold"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPublished, StatusHidden, StatusSold:
		return true
	default:
		return false
	}
}

// Product is a single catalogue entry: one piece of furniture with
// bilingual copy, a gallery of images and at most one video.
type Product struct {
	ID            uuid.UUID
	NameEN        string // English display name, mandatory.
	NameBG        string // Bulgarian display name, mandatory.
	DescriptionEN string // English description, stored as sanitized HTML.
	DescriptionBG string // Bulgarian description, stored as sanitized HTML.
	Category      Category
	WoodType      WoodType
	Status        Status
	Featured      bool            // Promotes the product on the homepage. Only meaningful while published.
	Images        []*ProductImage // Gallery, sorted by display order ascending. Order 0 is the primary image.
	Video         *ProductVideo   // Nil when the product has no video.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PrimaryImage returns the gallery image at display order 0, or nil when
// the product has no images yet.
func (p *Product) PrimaryImage() *ProductImage {
	for _, img := range p.Images {
		if img.DisplayOrder == 0 {
			return img
		}
	}

	return nil
}
