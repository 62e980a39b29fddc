package postgres

import (
	"context"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	"atelier/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
// It returns the repository as a repository.ProductRepository interface, adhering to dependency inversion.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindAll retrieves every product regardless of status, newest-created first.
func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Video").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(models), nil
}

// FindPublished retrieves only published products, newest-created first.
func (repo *productRepository) FindPublished(ctx context.Context) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Video").
		Where("status = ?", entity.StatusPublished.String()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list published products")
	}

	return toProductDomainList(models), nil
}

// FindFeatured retrieves published and featured products, newest-created first.
func (repo *productRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("status = ? AND featured = TRUE", entity.StatusPublished.String()).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return toProductDomainList(models), nil
}

// FindByID retrieves a single product with its sorted gallery and video.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Video").
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// CountByStatus aggregates product counts for the dashboard.
func (repo *productRepository) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products by status")
	}

	counts := &repository.StatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch entity.Status(row.Status) {
		case entity.StatusPublished:
			counts.Published = row.Count
		case entity.StatusHidden:
			counts.Hidden = row.Count
		case entity.StatusSold:
			counts.Sold = row.Count
		}
	}

	return counts, nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	// Map the pure domain entity to a GORM persistence model.
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit("Images", "Video").Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with the generated ID and timestamps
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product row. Gallery and video rows are
// managed by their own repositories, never through the product row.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name_en":        productM.NameEN,
			"name_bg":        productM.NameBG,
			"description_en": productM.DescriptionEN,
			"description_bg": productM.DescriptionBG,
			"category":       productM.Category,
			"wood_type":      productM.WoodType,
			"status":         productM.Status,
			"featured":       productM.Featured,
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.NewDatabaseExecuteError(result.Error, "missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// UpdateStatus performs the narrow status-only update used by the inline admin controls.
func (repo *productRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes the product row. Child asset rows are removed by the
// caller within the same transaction.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]*entity.ProductImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, toProductImageDomain(img))
	}

	return &entity.Product{
		ID:            data.ID,
		NameEN:        data.NameEN,
		NameBG:        data.NameBG,
		DescriptionEN: data.DescriptionEN,
		DescriptionBG: data.DescriptionBG,
		Category:      entity.Category(data.Category),
		WoodType:      entity.WoodType(data.WoodType),
		Status:        entity.Status(data.Status),
		Featured:      data.Featured,
		Images:        images,
		Video:         toProductVideoDomain(data.Video),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toProductDomainList(models []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		products = append(products, toProductDomain(m))
	}

	return products
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:            data.ID,
		NameEN:        data.NameEN,
		NameBG:        data.NameBG,
		DescriptionEN: data.DescriptionEN,
		DescriptionBG: data.DescriptionBG,
		Category:      data.Category.String(),
		WoodType:      data.WoodType.String(),
		Status:        data.Status.String(),
		Featured:      data.Featured,
	}
}
