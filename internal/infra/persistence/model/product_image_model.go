package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductImageModel mirrors the 'product_images' table. The composite
// unique index on (product_id, display_order) backstops the gallery
// ordering invariant against concurrent writers.
type ProductImageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_images_order"`
	StoragePath  string    `gorm:"type:varchar(512);not null"`
	URL          string    `gorm:"type:varchar(1024);not null"`
	DisplayOrder int       `gorm:"not null;uniqueIndex:idx_product_images_order"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}
