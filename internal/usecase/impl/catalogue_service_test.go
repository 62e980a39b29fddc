package impl

import (
	"context"
	"io"
	"log/slog"
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

// catalogueServiceFixtures holds all test dependencies for catalogue service tests.
type catalogueServiceFixtures struct {
	service usecase.CatalogueUsecase
	tx      *mockRepo.StubTxManager
	blobs   *mockSvc.MockBlobStore
	views   *mockSvc.MockViewCache
}

func createTestCatalogueService(t *testing.T) catalogueServiceFixtures {
	tx := mockRepo.NewStubTxManager(t)
	blobs := mockSvc.NewMockBlobStore(t)
	views := mockSvc.NewMockViewCache(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewCatalogueService(tx, blobs, views, logger)

	return catalogueServiceFixtures{
		service: service,
		tx:      tx,
		blobs:   blobs,
		views:   views,
	}
}

func validCreateInput() *usecase.CreateProductInput {
	return &usecase.CreateProductInput{
		NameEN:        "Oak dining table",
		NameBG:        "Дъбова трапезна маса",
		DescriptionEN: "<p>Solid oak, seats six.</p>",
		DescriptionBG: "<p>Масивен дъб, шест места.</p>",
		Category:      "table",
		WoodType:      "oak",
	}
}

func TestCatalogueService_Create_Success(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	newID := uuid.New()

	fx.tx.Factory.Products.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = newID
		}).
		Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	id, err := fx.service.Create(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, newID, id)
}

func TestCatalogueService_Create_DefaultsToHidden(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	var created *entity.Product

	fx.tx.Factory.Products.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Product)
		}).
		Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	_, err := fx.service.Create(ctx, validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.StatusHidden, created.Status)
}

func TestCatalogueService_Create_MissingFields(t *testing.T) {
	fx := createTestCatalogueService(t)

	input := validCreateInput()
	input.NameBG = ""
	input.DescriptionBG = ""

	_, err := fx.service.Create(context.Background(), input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"name_bg", "description_bg"}, validationErr.Fields())
	// No repository call must have happened.
	fx.tx.Factory.Products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogueService_Create_InvalidEnums(t *testing.T) {
	fx := createTestCatalogueService(t)

	input := validCreateInput()
	input.Category = "sofa"
	input.WoodType = "plastic"
	input.Status = "archived"

	_, err := fx.service.Create(context.Background(), input)
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"category", "wood_type", "status"}, validationErr.Fields())
	fx.tx.Factory.Products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogueService_GetByID_PublicScopeHidesUnpublished(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()
	hidden := &entity.Product{ID: id, Status: entity.StatusHidden}

	fx.tx.Factory.Products.On("FindByID", ctx, id).Return(hidden, nil).Twice()

	_, err := fx.service.GetByID(ctx, id, usecase.ScopePublic)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	product, err := fx.service.GetByID(ctx, id, usecase.ScopeAdmin)
	require.NoError(t, err)
	assert.Equal(t, id, product.ID)
}

func TestCatalogueService_Update_PartialMerge(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()
	existing := &entity.Product{
		ID:            id,
		NameEN:        "Oak dining table",
		NameBG:        "Дъбова трапезна маса",
		DescriptionEN: "old",
		DescriptionBG: "старо",
		Category:      entity.CategoryTable,
		WoodType:      entity.WoodOak,
		Status:        entity.StatusHidden,
	}

	newStatus := "published"
	featured := true

	fx.tx.Factory.Products.On("FindByID", ctx, id).Return(existing, nil)
	fx.tx.Factory.Products.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.Update(ctx, id, &usecase.UpdateProductInput{
		Status:   &newStatus,
		Featured: &featured,
	})
	require.NoError(t, err)

	// Untouched fields survive the merge.
	assert.Equal(t, "Oak dining table", existing.NameEN)
	assert.Equal(t, entity.StatusPublished, existing.Status)
	assert.True(t, existing.Featured)
}

func TestCatalogueService_Update_InvalidEnumRejected(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()
	existing := &entity.Product{ID: id, Status: entity.StatusHidden}
	badCategory := "garage"

	fx.tx.Factory.Products.On("FindByID", ctx, id).Return(existing, nil)

	err := fx.service.Update(ctx, id, &usecase.UpdateProductInput{Category: &badCategory})
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	fx.tx.Factory.Products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCatalogueService_SetStatus_InvalidValue(t *testing.T) {
	fx := createTestCatalogueService(t)

	err := fx.service.SetStatus(context.Background(), uuid.New(), entity.Status("archived"))
	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCatalogueService_SetStatus_NotFound(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.tx.Factory.Products.On("UpdateStatus", ctx, id, entity.StatusPublished).
		Return(repository.ErrProductNotFound)

	err := fx.service.SetStatus(ctx, id, entity.StatusPublished)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogueService_Delete_CascadesRowsAndBlobs(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()
	product := &entity.Product{
		ID: id,
		Images: []*entity.ProductImage{
			{ID: uuid.New(), ProductID: id, StoragePath: "products/x/1.jpg", DisplayOrder: 0},
			{ID: uuid.New(), ProductID: id, StoragePath: "products/x/2.jpg", DisplayOrder: 1},
		},
		Video: &entity.ProductVideo{ID: uuid.New(), ProductID: id, StoragePath: "products/x/v.mp4"},
	}

	fx.tx.Factory.Products.On("FindByID", ctx, id).Return(product, nil)
	fx.tx.Factory.Images.On("DeleteByProduct", ctx, id).Return(nil)
	fx.tx.Factory.Videos.On("DeleteByProduct", ctx, id).Return(nil)
	fx.tx.Factory.Products.On("Delete", ctx, id).Return(nil)
	fx.blobs.On("Delete", ctx, "products/x/1.jpg").Return(nil)
	fx.blobs.On("Delete", ctx, "products/x/2.jpg").Return(nil)
	fx.blobs.On("Delete", ctx, "products/x/v.mp4").Return(nil)
	fx.views.On("Invalidate", ctx, mock.Anything).Return(nil)

	err := fx.service.Delete(ctx, id)
	require.NoError(t, err)
}

func TestCatalogueService_Delete_BlobFailureRollsBack(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	id := uuid.New()
	product := &entity.Product{
		ID: id,
		Images: []*entity.ProductImage{
			{ID: uuid.New(), ProductID: id, StoragePath: "products/x/1.jpg"},
		},
	}

	fx.tx.Factory.Products.On("FindByID", ctx, id).Return(product, nil)
	fx.tx.Factory.Images.On("DeleteByProduct", ctx, id).Return(nil)
	fx.tx.Factory.Videos.On("DeleteByProduct", ctx, id).Return(nil)
	fx.tx.Factory.Products.On("Delete", ctx, id).Return(nil)
	fx.blobs.On("Delete", ctx, "products/x/1.jpg").Return(errors.New("bucket unreachable"))

	err := fx.service.Delete(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStorageFailure)
	fx.views.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCatalogueService_Stats(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	fx.tx.Factory.Products.On("CountByStatus", ctx).Return(&repository.StatusCounts{
		Total:     7,
		Published: 4,
		Hidden:    2,
		Sold:      1,
	}, nil)

	stats, err := fx.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Total)
	assert.Equal(t, int64(4), stats.Published)
	assert.Equal(t, int64(2), stats.Hidden)
	assert.Equal(t, int64(1), stats.Sold)
}

func TestCatalogueService_ListFeatured_DefaultLimit(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	fx.tx.Factory.Products.On("FindFeatured", ctx, usecase.DefaultFeaturedLimit).
		Return([]*entity.Product{}, nil)

	_, err := fx.service.ListFeatured(ctx, 0)
	require.NoError(t, err)
}

func TestCatalogueService_ListFeatured_CapsLimit(t *testing.T) {
	fx := createTestCatalogueService(t)

	ctx := context.Background()
	fx.tx.Factory.Products.On("FindFeatured", ctx, usecase.MaxFeaturedLimit).
		Return([]*entity.Product{}, nil)

	_, err := fx.service.ListFeatured(ctx, 500)
	require.NoError(t, err)
}
