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

// imageRepository implements the domain's ImageRepository interface using GORM.
type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository is the constructor for imageRepository.
func NewImageRepository(db *gorm.DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

// FindByID retrieves a single image row.
func (repo *imageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	var imageM model.ProductImageModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&imageM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrImageNotFound
		}

		return nil, errors.Wrap(err, "failed to find image by id")
	}

	return toProductImageDomain(&imageM), nil
}

// FindByProduct retrieves all images of a product, display order ascending.
func (repo *imageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	var models []*model.ProductImageModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product images")
	}

	images := make([]*entity.ProductImage, 0, len(models))
	for _, m := range models {
		images = append(images, toProductImageDomain(m))
	}

	return images, nil
}

// CountByProduct returns how many images a product currently holds.
func (repo *imageRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProductImageModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count product images")
	}

	return count, nil
}

// Create persists a new image row. A unique violation on the
// (product_id, display_order) index surfaces as ErrAssetConflict.
func (repo *imageRepository) Create(ctx context.Context, image *entity.ProductImage) error {
	imageM := fromProductImageDomain(image)

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAssetConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product image")
	}

	image.ID = imageM.ID
	image.CreatedAt = imageM.CreatedAt

	return nil
}

// UpdateOrder moves one image to a new display order.
func (repo *imageRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductImageModel{}).
		Where("id = ?", id).
		Update("display_order", order)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrAssetConflict
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update image order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// Delete removes one image row.
func (repo *imageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductImageModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// DeleteByProduct removes every image row of a product.
func (repo *imageRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductImageModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product images")
	}

	return nil
}

// toProductImageDomain converts a GORM ProductImageModel to a domain ProductImage entity.
func toProductImageDomain(data *model.ProductImageModel) *entity.ProductImage {
	if data == nil {
		return nil
	}

	return &entity.ProductImage{
		ID:           data.ID,
		ProductID:    data.ProductID,
		StoragePath:  data.StoragePath,
		URL:          data.URL,
		DisplayOrder: data.DisplayOrder,
		CreatedAt:    data.CreatedAt,
	}
}

// fromProductImageDomain converts a domain ProductImage entity to a GORM ProductImageModel.
func fromProductImageDomain(data *entity.ProductImage) *model.ProductImageModel {
	if data == nil {
		return nil
	}

	return &model.ProductImageModel{
		ID:           data.ID,
		ProductID:    data.ProductID,
		StoragePath:  data.StoragePath,
		URL:          data.URL,
		DisplayOrder: data.DisplayOrder,
	}
}
