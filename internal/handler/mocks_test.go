package handler

import (
	"context"
	"net/http"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockPlacementService is a mock implementation of OrderPlacementService.
type MockPlacementService struct {
	mock.Mock
}

func (m *MockPlacementService) PlaceGuestOrder(ctx context.Context, req *model.GuestOrderRequest) (*model.PlacementResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacementResult), args.Error(1)
}

func (m *MockPlacementService) PlaceOrder(ctx context.Context, userID string, req *model.OrderRequest) (*model.PlacementResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacementResult), args.Error(1)
}

// MockQueryService is a mock implementation of OrderQueryService.
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) TrackByPublicID(ctx context.Context, trackingID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockQueryService) ListAll(ctx context.Context, page model.PageRequest) (*model.OrderPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderPage), args.Error(1)
}

func (m *MockQueryService) ListForUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderPage), args.Error(1)
}

// MockStatusService is a mock implementation of OrderStatusService.
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

// MockPinger is a mock database pinger.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// withURLParams attaches chi route parameters to req.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
