package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Upsert(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func TestProductService_GetAll(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
		mockError      error
	}{
		{name: "Valid pagination", limit: 10, offset: 5, expectedLimit: 10, expectedOffset: 5},
		{name: "Zero limit uses default", limit: 0, offset: 0, expectedLimit: defaultProductPageSize},
		{name: "Limit is capped", limit: 500, offset: 0, expectedLimit: maxProductPageSize},
		{name: "Negative offset is clamped", limit: 10, offset: -3, expectedLimit: 10},
		{name: "Repository error", limit: 10, offset: 0, expectedLimit: 10, mockError: errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, zerolog.Nop())

			if tt.mockError != nil {
				mockRepo.On("GetAll", ctx, tt.expectedLimit, tt.expectedOffset).Return(nil, tt.mockError)
			} else {
				mockRepo.On("GetAll", ctx, tt.expectedLimit, tt.expectedOffset).Return([]model.Product{
					{ID: "P001", Name: "Alpha", Price: decimal.NewFromInt(10), Image: model.ImageList{" ", "a.png"}},
				}, nil)
			}

			products, err := service.GetAll(ctx, tt.limit, tt.offset)

			if tt.mockError != nil {
				require.Error(t, err)
				assert.Nil(t, products)
			} else {
				require.NoError(t, err)
				require.Len(t, products, 1)
				assert.Equal(t, model.ImageList{"a.png"}, products[0].Image)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		productID   string
		mockReturn  *model.Product
		mockError   error
		expectedErr error
	}{
		{
			name:       "Success",
			productID:  "P001",
			mockReturn: &model.Product{ID: "P001", Name: "Alpha", Price: decimal.NewFromInt(10), Image: model.ImageList{"a.png"}},
		},
		{name: "Product not found", productID: "P999", expectedErr: model.ErrProductNotFound},
		{name: "Empty product ID", productID: " ", expectedErr: model.NewValidationError("")},
		{name: "Repository error", productID: "P001", mockError: errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, zerolog.Nop())

			if tt.productID != " " {
				mockRepo.On("GetByID", ctx, tt.productID).Return(tt.mockReturn, tt.mockError)
			}

			product, err := service.GetByID(ctx, tt.productID)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, product)
			case tt.mockError != nil:
				assert.ErrorIs(t, err, tt.mockError)
				assert.Nil(t, product)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, product)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
