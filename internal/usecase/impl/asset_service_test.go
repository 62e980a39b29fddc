package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
	mockRepo "atelier/internal/mocks/repository"
	mockSvc "atelier/internal/mocks/service"
	"atelier/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// assetServiceFixtures holds all test dependencies for asset service tests.
type assetServiceFixtures struct {
	service usecase.AssetUsecase
	tx      *mockRepo.StubTxManager
	blobs   *mockSvc.MockBlobStore
	views   *mockSvc.MockViewCache
}

func createTestAssetService(t *testing.T) assetServiceFixtures {
	tx := mockRepo.NewStubTxManager(t)
	blobs := mockSvc.NewMockBlobStore(t)
	views := mockSvc.NewMockViewCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewAssetService(tx, blobs, views, logger)

	return assetServiceFixtures{
		service: service,
		tx:      tx,
		blobs:   blobs,
		views:   views,
	}
}

func imageUpload() *usecase.Upload {
	return &usecase.Upload{
		Filename:    "table.jpg",
		ContentType: "image/jpeg",
		Size:        1 << 20,
		Body:        strings.NewReader("jpeg bytes"),
	}
}

func videoUpload() *usecase.Upload {
	return &usecase.Upload{
		Filename:    "workshop.mp4",
		ContentType: "video/mp4",
		Size:        10 << 20,
		Body:        strings.NewReader("mp4 bytes"),
	}
}

func TestAssetService_UploadImage_RejectsWrongType(t *testing.T) {
	fx := createTestAssetService(t)

	upload := imageUpload()
	upload.ContentType = "image/gif"

	_, err := fx.service.UploadImage(context.Background(), uuid.New(), upload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAssetType)
	fx.blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_UploadImage_RejectsOversize(t *testing.T) {
	fx := createTestAssetService(t)

	upload := imageUpload()
	upload.Size = usecase.MaxImageSize + 1

	_, err := fx.service.UploadImage(context.Background(), uuid.New(), upload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAssetTooLarge)
}

func TestAssetService_UploadImage_RejectsEleventh(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Images.On("CountByProduct", ctx, productID).
		Return(int64(usecase.MaxImagesPerProduct), nil)

	_, err := fx.service.UploadImage(ctx, productID, imageUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAssetCardinalityExceeded)
	fx.blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_UploadImage_OrderIsCurrentCount(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	newID := uuid.New()
	var created *entity.ProductImage

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Images.On("CountByProduct", ctx, productID).Return(int64(3), nil)
	fx.blobs.On("Upload", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("https://media.example.com/key", nil)
	fx.tx.Factory.Images.On("Create", ctx, mock.AnythingOfType("*entity.ProductImage")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.ProductImage)
			created.ID = newID
		}).
		Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	output, err := fx.service.UploadImage(ctx, productID, imageUpload())
	require.NoError(t, err)
	assert.Equal(t, newID, output.ID)
	require.NotNil(t, created)
	assert.Equal(t, 3, created.DisplayOrder)
	assert.True(t, strings.HasPrefix(created.StoragePath, "products/"+productID.String()+"/"))
}

func TestAssetService_UploadImage_CompensatesOnMetadataFailure(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	var uploadedKey string

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Images.On("CountByProduct", ctx, productID).Return(int64(0), nil)
	fx.blobs.On("Upload", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Run(func(args mock.Arguments) {
			uploadedKey = args.String(1)
		}).
		Return("https://media.example.com/key", nil)
	fx.tx.Factory.Images.On("Create", ctx, mock.AnythingOfType("*entity.ProductImage")).
		Return(errors.New("insert failed"))
	fx.blobs.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	_, err := fx.service.UploadImage(ctx, productID, imageUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMetadataWriteFailure)

	// The compensating delete must target the key that was uploaded.
	fx.blobs.AssertCalled(t, "Delete", ctx, uploadedKey)
}

func TestAssetService_UploadImage_SurfacesFailedCompensation(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Images.On("CountByProduct", ctx, productID).Return(int64(0), nil)
	fx.blobs.On("Upload", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("https://media.example.com/key", nil)
	fx.tx.Factory.Images.On("Create", ctx, mock.AnythingOfType("*entity.ProductImage")).
		Return(errors.New("insert failed"))
	fx.blobs.On("Delete", ctx, mock.AnythingOfType("string")).
		Return(errors.New("bucket unreachable")).Once()

	_, err := fx.service.UploadImage(ctx, productID, imageUpload())
	require.Error(t, err)

	// Both the failed write and the orphaned blob stay observable.
	assert.ErrorIs(t, err, domainerrors.ErrMetadataWriteFailure)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)
}

func TestAssetService_UploadImage_LostRaceReadsAsCardinality(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Images.On("CountByProduct", ctx, productID).Return(int64(9), nil)
	fx.blobs.On("Upload", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("https://media.example.com/key", nil)
	fx.tx.Factory.Images.On("Create", ctx, mock.AnythingOfType("*entity.ProductImage")).
		Return(repository.ErrAssetConflict)
	fx.blobs.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

	_, err := fx.service.UploadImage(ctx, productID, imageUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAssetCardinalityExceeded)
}

func TestAssetService_DeleteImage_RenumbersSurvivors(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	deleted := &entity.ProductImage{ID: uuid.New(), ProductID: productID, StoragePath: "products/x/b.jpg", DisplayOrder: 1}
	first := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 0}
	last := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 2}

	fx.tx.Factory.Images.On("FindByID", ctx, deleted.ID).Return(deleted, nil)
	fx.blobs.On("Delete", ctx, "products/x/b.jpg").Return(nil)
	fx.tx.Factory.Images.On("Delete", ctx, deleted.ID).Return(nil)
	fx.tx.Factory.Images.On("FindByProduct", ctx, productID).
		Return([]*entity.ProductImage{first, last}, nil)
	// Only the trailing image moves, closing the gap.
	fx.tx.Factory.Images.On("UpdateOrder", ctx, last.ID, 1).Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.DeleteImage(ctx, deleted.ID)
	require.NoError(t, err)
	fx.tx.Factory.Images.AssertNotCalled(t, "UpdateOrder", ctx, first.ID, mock.Anything)
}

func TestAssetService_DeleteImage_NotFound(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	imageID := uuid.New()

	fx.tx.Factory.Images.On("FindByID", ctx, imageID).
		Return(nil, repository.ErrImageNotFound)

	err := fx.service.DeleteImage(ctx, imageID)
	assert.ErrorIs(t, err, domainerrors.ErrAssetNotFound)
}

func TestAssetService_ReorderImage_MovesDown(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	a := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 0}
	b := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 1}
	c := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 2}
	d := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 3}

	fx.tx.Factory.Images.On("FindByID", ctx, b.ID).Return(b, nil)
	fx.tx.Factory.Images.On("FindByProduct", ctx, productID).
		Return([]*entity.ProductImage{a, b, c, d}, nil)

	// Park beyond the gallery, shift the in-between range down, land.
	fx.tx.Factory.Images.On("UpdateOrder", ctx, b.ID, 4).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, c.ID, 1).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, d.ID, 2).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, b.ID, 3).Return(nil).Once()
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.ReorderImage(ctx, b.ID, 3)
	require.NoError(t, err)
}

func TestAssetService_ReorderImage_MovesUp(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	a := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 0}
	b := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 1}
	c := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 2}

	fx.tx.Factory.Images.On("FindByID", ctx, c.ID).Return(c, nil)
	fx.tx.Factory.Images.On("FindByProduct", ctx, productID).
		Return([]*entity.ProductImage{a, b, c}, nil)

	fx.tx.Factory.Images.On("UpdateOrder", ctx, c.ID, 3).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, b.ID, 2).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, a.ID, 1).Return(nil).Once()
	fx.tx.Factory.Images.On("UpdateOrder", ctx, c.ID, 0).Return(nil).Once()
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.ReorderImage(ctx, c.ID, 0)
	require.NoError(t, err)
}

func TestAssetService_ReorderImage_SamePositionIsNoop(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	a := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 0}
	b := &entity.ProductImage{ID: uuid.New(), ProductID: productID, DisplayOrder: 1}

	fx.tx.Factory.Images.On("FindByID", ctx, b.ID).Return(b, nil)
	fx.tx.Factory.Images.On("FindByProduct", ctx, productID).
		Return([]*entity.ProductImage{a, b}, nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.ReorderImage(ctx, b.ID, 1)
	require.NoError(t, err)
	fx.tx.Factory.Images.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_UploadVideo_RefusedWhileOneExists(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Videos.On("FindByProduct", ctx, productID).
		Return(&entity.ProductVideo{ID: uuid.New(), ProductID: productID}, nil)

	_, err := fx.service.UploadVideo(ctx, productID, videoUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAssetCardinalityExceeded)
	fx.blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_UploadVideo_Success(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	newID := uuid.New()

	fx.tx.Factory.Products.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fx.tx.Factory.Videos.On("FindByProduct", ctx, productID).
		Return(nil, repository.ErrVideoNotFound)
	fx.blobs.On("Upload", ctx, mock.AnythingOfType("string"), "video/mp4", mock.Anything).
		Return("https://media.example.com/key", nil)
	fx.tx.Factory.Videos.On("Create", ctx, mock.AnythingOfType("*entity.ProductVideo")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.ProductVideo).ID = newID
		}).
		Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	output, err := fx.service.UploadVideo(ctx, productID, videoUpload())
	require.NoError(t, err)
	assert.Equal(t, newID, output.ID)
}

func TestAssetService_UploadVideo_RejectsWrongType(t *testing.T) {
	fx := createTestAssetService(t)

	upload := videoUpload()
	upload.ContentType = "video/x-msvideo"

	_, err := fx.service.UploadVideo(context.Background(), uuid.New(), upload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAssetType)
}

func TestAssetService_DeleteVideo_Success(t *testing.T) {
	fx := createTestAssetService(t)

	ctx := context.Background()
	productID := uuid.New()
	video := &entity.ProductVideo{ID: uuid.New(), ProductID: productID, StoragePath: "products/x/v.mp4"}

	fx.tx.Factory.Videos.On("FindByID", ctx, video.ID).Return(video, nil)
	fx.blobs.On("Delete", ctx, "products/x/v.mp4").Return(nil)
	fx.tx.Factory.Videos.On("Delete", ctx, video.ID).Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.DeleteVideo(ctx, video.ID)
	require.NoError(t, err)
}
