// Package model contains the GORM persistence models mirroring the
// database tables. Models never leave the infra layer; repositories map
// them to and from domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type ProductModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	NameEN        string    `gorm:"column:name_en;type:varchar(255);not null"`
	NameBG        string    `gorm:"column:name_bg;type:varchar(255);not null"`
	DescriptionEN string    `gorm:"column:description_en;type:text;not null"`
	DescriptionBG string    `gorm:"column:description_bg;type:text;not null"`
	Category      string    `gorm:"type:varchar(20);not null;index"`
	WoodType      string    `gorm:"type:varchar(20);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'hidden';index"`
	Featured      bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Images []*ProductImageModel `gorm:"foreignKey:ProductID"`
	Video  *ProductVideoModel   `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
