package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductVideoModel mirrors the 'product_videos' table. The unique index
// on product_id enforces the one-video-per-product rule at the database.
type ProductVideoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StoragePath string    `gorm:"type:varchar(512);not null"`
	URL         string    `gorm:"type:varchar(1024);not null"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductVideoModel) TableName() string {
	return "product_videos"
}
