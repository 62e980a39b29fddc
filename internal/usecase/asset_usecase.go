package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Upload limits. Ceilings and allow-lists are deliberate constants, not
// configuration: they are part of the product contract.
const (
	MaxImageSize = 5 << 20  // 5 MiB
	MaxVideoSize = 50 << 20 // 50 MiB

	MaxImagesPerProduct = 10
	MaxVideosPerProduct = 1
)

// AllowedImageTypes is the MIME allow-list for gallery uploads.
var AllowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// AllowedVideoTypes is the MIME allow-list for video uploads.
var AllowedVideoTypes = map[string]struct{}{
	"video/mp4":       {},
	"video/webm":      {},
	"video/quicktime": {},
}

// Upload is one inbound binary from the admin forms.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AssetOutput identifies a stored asset and its public URL.
type AssetOutput struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// AssetUsecase validates and persists binary uploads and enforces the
// per-product cardinality limits.
type AssetUsecase interface {
	// UploadImage stores a gallery image at the next display order.
	UploadImage(ctx context.Context, productID uuid.UUID, upload *Upload) (*AssetOutput, error)

	// DeleteImage removes the binary and its row, then renumbers the
	// remaining images to stay contiguous from zero.
	DeleteImage(ctx context.Context, imageID uuid.UUID) error

	// ReorderImage moves one image to a new display order, shifting its
	// neighbours so orders stay contiguous and unique.
	ReorderImage(ctx context.Context, imageID uuid.UUID, newOrder int) error

	// UploadVideo stores the product video. Refused while one exists.
	UploadVideo(ctx context.Context, productID uuid.UUID, upload *Upload) (*AssetOutput, error)

	// DeleteVideo removes the binary and its row.
	DeleteVideo(ctx context.Context, videoID uuid.UUID) error
}
