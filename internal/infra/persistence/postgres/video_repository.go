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

// videoRepository implements the domain's VideoRepository interface using GORM.
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository is the constructor for videoRepository.
func NewVideoRepository(db *gorm.DB) repository.VideoRepository {
	return &videoRepository{db: db}
}

// FindByID retrieves a single video row.
func (repo *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductVideo, error) {
	var videoM model.ProductVideoModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&videoM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video by id")
	}

	return toProductVideoDomain(&videoM), nil
}

// FindByProduct retrieves the video of a product, or ErrVideoNotFound.
func (repo *videoRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*entity.ProductVideo, error) {
	var videoM model.ProductVideoModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&videoM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video by product")
	}

	return toProductVideoDomain(&videoM), nil
}

// Create persists a new video row. A unique violation on product_id
// surfaces as ErrAssetConflict.
func (repo *videoRepository) Create(ctx context.Context, video *entity.ProductVideo) error {
	videoM := fromProductVideoDomain(video)

	if err := repo.db.WithContext(ctx).Create(videoM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAssetConflict
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product video")
	}

	video.ID = videoM.ID
	video.CreatedAt = videoM.CreatedAt

	return nil
}

// Delete removes one video row.
func (repo *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductVideoModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product video")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// DeleteByProduct removes the video row of a product.
func (repo *videoRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductVideoModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product videos")
	}

	return nil
}

// toProductVideoDomain converts a GORM ProductVideoModel to a domain ProductVideo entity.
func toProductVideoDomain(data *model.ProductVideoModel) *entity.ProductVideo {
	if data == nil {
		return nil
	}

	return &entity.ProductVideo{
		ID:          data.ID,
		ProductID:   data.ProductID,
		StoragePath: data.StoragePath,
		URL:         data.URL,
		CreatedAt:   data.CreatedAt,
	}
}

// fromProductVideoDomain converts a domain ProductVideo entity to a GORM ProductVideoModel.
func fromProductVideoDomain(data *entity.ProductVideo) *model.ProductVideoModel {
	if data == nil {
		return nil
	}

	return &model.ProductVideoModel{
		ID:          data.ID,
		ProductID:   data.ProductID,
		StoragePath: data.StoragePath,
		URL:         data.URL,
	}
}
