package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	apperrors "atelier/internal/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// assetService implements the AssetUsecase interface.
type assetService struct {
	txManager repository.TransactionManager
	blobs     service.BlobStore
	views     service.ViewCache
	logger    *slog.Logger
}

// NewAssetService is the constructor for assetService.
func NewAssetService(
	txManager repository.TransactionManager,
	blobs service.BlobStore,
	views service.ViewCache,
	logger *slog.Logger,
) usecase.AssetUsecase {
	return &assetService{
		txManager: txManager,
		blobs:     blobs,
		views:     views,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *assetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *assetService) invalidate(ctx context.Context, productID uuid.UUID) {
	views := []string{service.ViewAdminProducts, service.ProductDetailView(productID)}
	if err := srv.views.Invalidate(ctx, views...); err != nil {
		srv.log(ctx).Warn("Failed to invalidate cached views", slog.Any("error", err))
	}
}

// UploadImage validates and stores one gallery image. The binary goes to
// the bucket first; a failed metadata insert triggers a compensating blob
// delete so no orphaned binaries remain.
func (srv *assetService) UploadImage(ctx context.Context, productID uuid.UUID, upload *usecase.Upload) (*usecase.AssetOutput, error) {
	if _, ok := usecase.AllowedImageTypes[upload.ContentType]; !ok {
		return nil, domainerrors.ErrInvalidAssetType.WithDetails("got " + upload.ContentType + ", want JPEG, PNG or WebP")
	}
	if upload.Size > usecase.MaxImageSize {
		return nil, domainerrors.ErrAssetTooLarge.WithDetails(strconv.FormatInt(upload.Size, 10) + " bytes exceeds the 5 MiB limit")
	}

	// Cardinality pre-check. The check-then-act window is closed by the
	// unique (product_id, display_order) index at insert time.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		count, err := repoFactory.ImageRepo().CountByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to count images")
		}
		if count >= usecase.MaxImagesPerProduct {
			return domainerrors.ErrAssetCardinalityExceeded.WithDetails("a product holds at most 10 images")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	key := buildAssetKey(productID, upload.Filename, upload.ContentType)

	url, err := srv.blobs.Upload(ctx, key, upload.ContentType, upload.Body)
	if err != nil {
		srv.log(ctx).Error("Image blob upload failed", slog.Any("error", err), slog.String("key", key))

		return nil, domainerrors.ErrStorageFailure.WrapMessage("image upload failed")
	}

	image := &entity.ProductImage{
		ProductID:   productID,
		StoragePath: key,
		URL:         url,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		imageRepo := repoFactory.ImageRepo()

		// Re-count inside the write transaction: the next free display
		// order is always the current count.
		count, err := imageRepo.CountByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to count images")
		}
		if count >= usecase.MaxImagesPerProduct {
			return domainerrors.ErrAssetCardinalityExceeded.WithDetails("a product holds at most 10 images")
		}

		image.DisplayOrder = int(count)

		return imageRepo.Create(ctx, image)
	})
	if err != nil {
		return nil, srv.compensate(ctx, key, err)
	}

	srv.log(ctx).Info("Image uploaded",
		slog.Any("product_id", productID),
		slog.Any("image_id", image.ID),
		slog.Int("display_order", image.DisplayOrder),
	)
	srv.invalidate(ctx, productID)

	return &usecase.AssetOutput{ID: image.ID, URL: url}, nil
}

// DeleteImage removes the blob and its row, then renumbers the remaining
// gallery so display orders stay contiguous from zero.
func (srv *assetService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	var productID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		imageRepo := repoFactory.ImageRepo()

		image, err := imageRepo.FindByID(ctx, imageID)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrAssetNotFound.WrapMessage("no such image")
			}

			return errors.Wrap(err, "failed to find image")
		}
		productID = image.ProductID

		if err := srv.blobs.Delete(ctx, image.StoragePath); err != nil {
			return domainerrors.ErrStorageFailure.WrapMessage("failed to delete image blob")
		}
		if err := imageRepo.Delete(ctx, imageID); err != nil {
			return errors.Wrap(err, "failed to delete image row")
		}

		// Close the gap: survivors keep their relative order and are
		// renumbered to 0..n-2. Ascending iteration only ever moves an
		// image downwards, so the unique index never trips.
		remaining, err := imageRepo.FindByProduct(ctx, image.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to list remaining images")
		}
		for i, sibling := range remaining {
			if sibling.DisplayOrder == i {
				continue
			}
			if err := imageRepo.UpdateOrder(ctx, sibling.ID, i); err != nil {
				return errors.Wrap(err, "failed to renumber image")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Image deleted", slog.Any("image_id", imageID), slog.Any("product_id", productID))
	srv.invalidate(ctx, productID)

	return nil
}

// ReorderImage moves one image to a new display order and shifts the
// images in between, preserving contiguity.
func (srv *assetService) ReorderImage(ctx context.Context, imageID uuid.UUID, newOrder int) error {
	var productID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		imageRepo := repoFactory.ImageRepo()

		image, err := imageRepo.FindByID(ctx, imageID)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrAssetNotFound.WrapMessage("no such image")
			}

			return errors.Wrap(err, "failed to find image")
		}
		productID = image.ProductID

		siblings, err := imageRepo.FindByProduct(ctx, image.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to list images")
		}

		oldOrder := image.DisplayOrder
		target := clamp(newOrder, 0, len(siblings)-1)
		if target == oldOrder {
			return nil
		}

		// Park the moving image beyond the gallery so the shifts below
		// never collide with the unique (product_id, display_order) index.
		if err := imageRepo.UpdateOrder(ctx, image.ID, len(siblings)); err != nil {
			return errors.Wrap(err, "failed to park image")
		}

		if target < oldOrder {
			// Shift the range [target, oldOrder) up by one, highest first.
			for i := len(siblings) - 1; i >= 0; i-- {
				order := siblings[i].DisplayOrder
				if siblings[i].ID == image.ID || order < target || order >= oldOrder {
					continue
				}
				if err := imageRepo.UpdateOrder(ctx, siblings[i].ID, order+1); err != nil {
					return errors.Wrap(err, "failed to shift image")
				}
			}
		} else {
			// Shift the range (oldOrder, target] down by one, lowest first.
			for i := range siblings {
				order := siblings[i].DisplayOrder
				if siblings[i].ID == image.ID || order <= oldOrder || order > target {
					continue
				}
				if err := imageRepo.UpdateOrder(ctx, siblings[i].ID, order-1); err != nil {
					return errors.Wrap(err, "failed to shift image")
				}
			}
		}

		return imageRepo.UpdateOrder(ctx, image.ID, target)
	})
	if err != nil {
		return err
	}

	srv.invalidate(ctx, productID)

	return nil
}

// UploadVideo stores the single product video. Upload is refused while a
// video row exists; the unique product_id index backstops the race.
func (srv *assetService) UploadVideo(ctx context.Context, productID uuid.UUID, upload *usecase.Upload) (*usecase.AssetOutput, error) {
	if _, ok := usecase.AllowedVideoTypes[upload.ContentType]; !ok {
		return nil, domainerrors.ErrInvalidAssetType.WithDetails("got " + upload.ContentType + ", want MP4, WebM or QuickTime")
	}
	if upload.Size > usecase.MaxVideoSize {
		return nil, domainerrors.ErrAssetTooLarge.WithDetails(strconv.FormatInt(upload.Size, 10) + " bytes exceeds the 50 MiB limit")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		_, err := repoFactory.VideoRepo().FindByProduct(ctx, productID)
		if err == nil {
			return domainerrors.ErrAssetCardinalityExceeded.WithDetails("delete the existing video before uploading a new one")
		}
		if !errors.Is(err, repository.ErrVideoNotFound) {
			return errors.Wrap(err, "failed to check for existing video")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	key := buildAssetKey(productID, upload.Filename, upload.ContentType)

	url, err := srv.blobs.Upload(ctx, key, upload.ContentType, upload.Body)
	if err != nil {
		srv.log(ctx).Error("Video blob upload failed", slog.Any("error", err), slog.String("key", key))

		return nil, domainerrors.ErrStorageFailure.WrapMessage("video upload failed")
	}

	video := &entity.ProductVideo{
		ProductID:   productID,
		StoragePath: key,
		URL:         url,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.VideoRepo().Create(ctx, video)
	})
	if err != nil {
		return nil, srv.compensate(ctx, key, err)
	}

	srv.log(ctx).Info("Video uploaded", slog.Any("product_id", productID), slog.Any("video_id", video.ID))
	srv.invalidate(ctx, productID)

	return &usecase.AssetOutput{ID: video.ID, URL: url}, nil
}

// DeleteVideo removes the blob and its row.
func (srv *assetService) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	var productID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		videoRepo := repoFactory.VideoRepo()

		video, err := videoRepo.FindByID(ctx, videoID)
		if err != nil {
			if errors.Is(err, repository.ErrVideoNotFound) {
				return domainerrors.ErrAssetNotFound.WrapMessage("no such video")
			}

			return errors.Wrap(err, "failed to find video")
		}
		productID = video.ProductID

		if err := srv.blobs.Delete(ctx, video.StoragePath); err != nil {
			return domainerrors.ErrStorageFailure.WrapMessage("failed to delete video blob")
		}

		return videoRepo.Delete(ctx, videoID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Video deleted", slog.Any("video_id", videoID), slog.Any("product_id", productID))
	srv.invalidate(ctx, productID)

	return nil
}

// compensate removes a just-uploaded blob after its metadata write failed.
// If the cleanup itself fails, both failures are surfaced together so the
// orphaned blob is never silently lost.
func (srv *assetService) compensate(ctx context.Context, key string, cause error) error {
	srv.log(ctx).Error("Metadata write failed, removing uploaded blob", slog.Any("error", cause), slog.String("key", key))

	if cleanupErr := srv.blobs.Delete(ctx, key); cleanupErr != nil {
		srv.log(ctx).Error("Compensating blob delete failed", slog.Any("error", cleanupErr), slog.String("key", key))

		return apperrors.Join(
			domainerrors.ErrMetadataWriteFailure.WrapMessage(cause.Error()),
			domainerrors.ErrStorageFailure.WrapMessage("orphaned blob "+key+": "+cleanupErr.Error()),
		)
	}

	// A lost cardinality race reads as the cardinality error, not as an
	// internal failure.
	if errors.Is(cause, repository.ErrAssetConflict) {
		return domainerrors.ErrAssetCardinalityExceeded.WrapMessage("concurrent upload won the slot")
	}

	var appErr domainerrors.AppError
	if errors.As(cause, &appErr) {
		return cause
	}

	return domainerrors.ErrMetadataWriteFailure.WrapMessage(cause.Error())
}

// buildAssetKey produces a collision-resistant, product-scoped blob key.
func buildAssetKey(productID uuid.UUID, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionByType[contentType]
	}

	buf := make([]byte, 4)
	_, _ = rand.Read(buf)

	return "products/" + productID.String() + "/" +
		strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + hex.EncodeToString(buf) + ext
}

var extensionByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
