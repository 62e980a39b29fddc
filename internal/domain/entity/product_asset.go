package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is one gallery image belonging to exactly one product.
// Display orders within a product stay contiguous from zero; deleting an
// image renumbers the survivors.
type ProductImage struct {
	ID           uuid.UUID
	ProductID    uuid.UUID
	StoragePath  string // Blob key inside the media bucket.
	URL          string // Durable public URL for the rendered gallery.
	DisplayOrder int    // Zero-based gallery rank; 0 is the primary image.
	CreatedAt    time.Time
}

// ProductVideo is the single optional video of a product. Upload is
// refused while one exists; the admin must delete before replacing.
type ProductVideo struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	StoragePath string
	URL         string
	CreatedAt   time.Time
}
