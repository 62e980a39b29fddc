// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "atelier/internal/delivery/context"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/domain/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogueService implements the CatalogueUsecase interface.
type catalogueService struct {
	txManager repository.TransactionManager
	blobs     service.BlobStore
	views     service.ViewCache
	logger    *slog.Logger
}

// NewCatalogueService is the constructor for catalogueService.
func NewCatalogueService(
	txManager repository.TransactionManager,
	blobs service.BlobStore,
	views service.ViewCache,
	logger *slog.Logger,
) usecase.CatalogueUsecase {
	return &catalogueService{
		txManager: txManager,
		blobs:     blobs,
		views:     views,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogueService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// invalidate drops cached renderings after a successful mutation. A failed
// invalidation never fails the mutation itself; the stale view expires on
// its own TTL.
func (srv *catalogueService) invalidate(ctx context.Context, views ...string) {
	if err := srv.views.Invalidate(ctx, views...); err != nil {
		srv.log(ctx).Warn("Failed to invalidate cached views", slog.Any("error", err))
	}
}

// ListAll retrieves every product for the admin console.
func (srv *catalogueService) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().FindAll(ctx)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ListPublished retrieves the public catalogue.
func (srv *catalogueService) ListPublished(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().FindPublished(ctx)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list published products")
	}

	return products, nil
}

// ListFeatured retrieves the homepage promotion slice.
func (srv *catalogueService) ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = usecase.DefaultFeaturedLimit
	}
	if limit > usecase.MaxFeaturedLimit {
		limit = usecase.MaxFeaturedLimit
	}

	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().FindFeatured(ctx, limit)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return products, nil
}

// GetByID retrieves one product with its gallery and video. In the public
// scope a non-published match reads as not found.
func (srv *catalogueService) GetByID(ctx context.Context, id uuid.UUID, scope usecase.ReadScope) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if scope == usecase.ScopePublic && found.Status != entity.StatusPublished {
			// Hidden and sold rows must be indistinguishable from absent
			// ones on the public paths.
			return domainerrors.ErrProductNotFound.WrapMessage("product not published")
		}

		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// Create validates the input and inserts a new product row.
func (srv *catalogueService) Create(ctx context.Context, input *usecase.CreateProductInput) (uuid.UUID, error) {
	product, err := buildProduct(input)
	if err != nil {
		return uuid.Nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err))

		return uuid.Nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("product_id", product.ID), slog.String("name_en", product.NameEN))
	srv.invalidate(ctx, service.ViewAdminProducts, service.ViewDashboard, service.ViewCatalogue)

	return product.ID, nil
}

// Update merges the provided fields onto the existing row and re-validates
// any changed enum fields.
func (srv *catalogueService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := mergeProduct(product, input); err != nil {
			return err
		}

		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return err
	}

	srv.invalidate(ctx, service.ViewAdminProducts, service.ViewDashboard, service.ViewCatalogue, service.ProductDetailView(id))

	return nil
}

// SetStatus performs the narrow status-only update used by the inline
// admin controls.
func (srv *catalogueService) SetStatus(ctx context.Context, id uuid.UUID, status entity.Status) error {
	if !status.IsValid() {
		return domainerrors.NewValidationError("status")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().UpdateStatus(ctx, id, status); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to update product status")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Product status changed", slog.Any("product_id", id), slog.String("status", status.String()))
	srv.invalidate(ctx, service.ViewAdminProducts, service.ViewDashboard, service.ViewCatalogue, service.ProductDetailView(id))

	return nil
}

// Delete removes the product together with its image and video rows and
// their backing blobs. Blob deletion happens inside the same transaction
// so a storage failure rolls the rows back and leaves no orphans either way.
func (srv *catalogueService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("no such product")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ImageRepo().DeleteByProduct(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete image rows")
		}
		if err := repoFactory.VideoRepo().DeleteByProduct(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete video row")
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete product row")
		}

		for _, img := range product.Images {
			if err := srv.blobs.Delete(ctx, img.StoragePath); err != nil {
				return domainerrors.ErrStorageFailure.WrapMessage("failed to delete image blob " + img.StoragePath)
			}
		}
		if product.Video != nil {
			if err := srv.blobs.Delete(ctx, product.Video.StoragePath); err != nil {
				return domainerrors.ErrStorageFailure.WrapMessage("failed to delete video blob " + product.Video.StoragePath)
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete product", slog.Any("error", err), slog.Any("product_id", id))

		return err
	}

	srv.log(ctx).Info("Product deleted", slog.Any("product_id", id))
	srv.invalidate(ctx, service.ViewAdminProducts, service.ViewDashboard, service.ViewCatalogue, service.ProductDetailView(id))

	return nil
}

// Stats aggregates product counts for the dashboard.
func (srv *catalogueService) Stats(ctx context.Context) (*usecase.ProductStats, error) {
	var stats *usecase.ProductStats

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		counts, err := repoFactory.ProductRepo().CountByStatus(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count products")
		}

		stats = &usecase.ProductStats{
			Total:     counts.Total,
			Published: counts.Published,
			Hidden:    counts.Hidden,
			Sold:      counts.Sold,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// buildProduct validates a create input and maps it to a fresh entity.
// Status defaults to hidden so new products never leak into the public
// catalogue by accident.
func buildProduct(input *usecase.CreateProductInput) (*entity.Product, error) {
	var invalid []string

	if input.NameEN == "" {
		invalid = append(invalid, "name_en")
	}
	if input.NameBG == "" {
		invalid = append(invalid, "name_bg")
	}
	if input.DescriptionEN == "" {
		invalid = append(invalid, "description_en")
	}
	if input.DescriptionBG == "" {
		invalid = append(invalid, "description_bg")
	}

	category := entity.Category(input.Category)
	if !category.IsValid() {
		invalid = append(invalid, "category")
	}
	woodType := entity.WoodType(input.WoodType)
	if !woodType.IsValid() {
		invalid = append(invalid, "wood_type")
	}

	status := entity.StatusHidden
	if input.Status != "" {
		status = entity.Status(input.Status)
		if !status.IsValid() {
			invalid = append(invalid, "status")
		}
	}

	if len(invalid) > 0 {
		return nil, domainerrors.NewValidationError(invalid...)
	}

	return &entity.Product{
		NameEN:        input.NameEN,
		NameBG:        input.NameBG,
		DescriptionEN: input.DescriptionEN,
		DescriptionBG: input.DescriptionBG,
		Category:      category,
		WoodType:      woodType,
		Status:        status,
		Featured:      input.Featured,
	}, nil
}

// mergeProduct applies a partial update onto an existing product and
// re-validates the enum fields that changed.
func mergeProduct(product *entity.Product, input *usecase.UpdateProductInput) error {
	var invalid []string

	if input.NameEN != nil {
		if *input.NameEN == "" {
			invalid = append(invalid, "name_en")
		}
		product.NameEN = *input.NameEN
	}
	if input.NameBG != nil {
		if *input.NameBG == "" {
			invalid = append(invalid, "name_bg")
		}
		product.NameBG = *input.NameBG
	}
	if input.DescriptionEN != nil {
		if *input.DescriptionEN == "" {
			invalid = append(invalid, "description_en")
		}
		product.DescriptionEN = *input.DescriptionEN
	}
	if input.DescriptionBG != nil {
		if *input.DescriptionBG == "" {
			invalid = append(invalid, "description_bg")
		}
		product.DescriptionBG = *input.DescriptionBG
	}
	if input.Category != nil {
		category := entity.Category(*input.Category)
		if !category.IsValid() {
			invalid = append(invalid, "category")
		}
		product.Category = category
	}
	if input.WoodType != nil {
		woodType := entity.WoodType(*input.WoodType)
		if !woodType.IsValid() {
			invalid = append(invalid, "wood_type")
		}
		product.WoodType = woodType
	}
	if input.Status != nil {
		status := entity.Status(*input.Status)
		if !status.IsValid() {
			invalid = append(invalid, "status")
		}
		product.Status = status
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if len(invalid) > 0 {
		return domainerrors.NewValidationError(invalid...)
	}

	return nil
}
