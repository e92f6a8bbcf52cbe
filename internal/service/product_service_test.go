package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockProducts.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	product, err := svc.Create(ctx, ProductInput{
		Name:        "Margherita",
		Description: "Tomato, mozzarella, basil",
		Type:        "pizza",
		Price:       9.5,
	}, nil)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Margherita", product.Name)
	assert.Empty(t, product.Image)
	mockImages.AssertNotCalled(t, "Save", mock.Anything)
}

func TestProductService_Create_WithImage(t *testing.T) {
	ctx := context.Background()
	header := &multipart.FileHeader{Filename: "margherita.png"}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockImages.On("Save", header).Return("uploads/abc.png", nil)
	mockProducts.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	product, err := svc.Create(ctx, ProductInput{
		Name: "Margherita", Description: "Classic", Type: "pizza", Price: 9.5,
	}, header)

	require.NoError(t, err)
	assert.Equal(t, "uploads/abc.png", product.Image)
}

func TestProductService_Create_ValidationFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(new(MockProductRepository), new(MockImageStore), zerolog.Nop())

	tests := []struct {
		name    string
		input   ProductInput
		wantMsg string
	}{
		{
			name:    "missing name",
			input:   ProductInput{Description: "Classic", Type: "pizza", Price: 9.5},
			wantMsg: "The name field is missing",
		},
		{
			name:    "missing type",
			input:   ProductInput{Name: "Margherita", Description: "Classic", Price: 9.5},
			wantMsg: "The type field is missing",
		},
		{
			name:    "negative price",
			input:   ProductInput{Name: "Margherita", Description: "Classic", Type: "pizza", Price: -1},
			wantMsg: model.ErrNegativePrice.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestProductService_Create_CleansUpImageOnRepoFailure(t *testing.T) {
	ctx := context.Background()
	header := &multipart.FileHeader{Filename: "margherita.png"}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockImages.On("Save", header).Return("uploads/abc.png", nil)
	mockImages.On("Delete", "uploads/abc.png").Return(nil)
	mockProducts.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(errors.New("insert failed"))

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	_, err := svc.Create(ctx, ProductInput{
		Name: "Margherita", Description: "Classic", Type: "pizza", Price: 9.5,
	}, header)

	require.Error(t, err)
	mockImages.AssertCalled(t, "Delete", "uploads/abc.png")
}

func TestProductService_Update_ClearsImageWithoutUpload(t *testing.T) {
	ctx := context.Background()
	existing := &model.Product{
		ID: uuid.New(), Name: "Margherita", Description: "Classic",
		Type: "pizza", Price: 9.5, Image: "uploads/old.png",
	}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockProducts.On("GetByID", ctx, existing.ID).Return(existing, nil)
	mockProducts.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil)
	mockImages.On("Delete", "uploads/old.png").Return(nil)

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	updated, err := svc.Update(ctx, existing.ID, ProductInput{
		Name: "Capricciosa", Description: "Ham and mushrooms", Type: "pizza", Price: 11,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Capricciosa", updated.Name)
	assert.Empty(t, updated.Image)
	mockImages.AssertCalled(t, "Delete", "uploads/old.png")
}

func TestProductService_Patch_PreservesImageWithoutUpload(t *testing.T) {
	ctx := context.Background()
	existing := &model.Product{
		ID: uuid.New(), Name: "Margherita", Description: "Classic",
		Type: "pizza", Price: 9.5, Image: "uploads/old.png",
	}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockProducts.On("GetByID", ctx, existing.ID).Return(existing, nil)
	mockProducts.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	patched, err := svc.Patch(ctx, existing.ID, ProductPatch{Price: floatPtr(10.5)}, nil)

	require.NoError(t, err)
	assert.Equal(t, 10.5, patched.Price)
	assert.Equal(t, "Margherita", patched.Name)
	assert.Equal(t, "uploads/old.png", patched.Image)
	mockImages.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestProductService_Patch_NotFound(t *testing.T) {
	ctx := context.Background()
	mockProducts := new(MockProductRepository)
	id := uuid.New()
	mockProducts.On("GetByID", ctx, id).Return(nil, nil)

	svc := NewProductService(mockProducts, new(MockImageStore), zerolog.Nop())
	_, err := svc.Patch(ctx, id, ProductPatch{Price: floatPtr(10)}, nil)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductService_Delete_RemovesImage(t *testing.T) {
	ctx := context.Background()
	existing := &model.Product{
		ID: uuid.New(), Name: "Margherita", Description: "Classic",
		Type: "pizza", Price: 9.5, Image: "uploads/old.png",
	}

	mockProducts := new(MockProductRepository)
	mockImages := new(MockImageStore)
	mockProducts.On("GetByID", ctx, existing.ID).Return(existing, nil)
	mockProducts.On("Delete", ctx, existing.ID).Return(nil)
	mockImages.On("Delete", "uploads/old.png").Return(nil)

	svc := NewProductService(mockProducts, mockImages, zerolog.Nop())
	deleted, err := svc.Delete(ctx, existing.ID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, deleted.ID)
	mockImages.AssertCalled(t, "Delete", "uploads/old.png")
}
