package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// GuestIdentityStore records buyers who check out without an account.
type GuestIdentityStore interface {
	// CreateGuest inserts a new guest within tx and returns its ID. Guests are
	// never looked up or reused.
	CreateGuest(ctx context.Context, tx pgx.Tx, guest *model.GuestUser) (uuid.UUID, error)
}

// OrderPlacementService places orders at most once per idempotency token.
type OrderPlacementService interface {
	// PlaceGuestOrder places an order for a buyer without an account.
	PlaceGuestOrder(ctx context.Context, req *model.GuestOrderRequest) (*model.PlacementResult, error)

	// PlaceOrder places an order for an authenticated user.
	PlaceOrder(ctx context.Context, userID string, req *model.OrderRequest) (*model.PlacementResult, error)
}

// OrderQueryService reads orders for tracking and listings.
type OrderQueryService interface {
	// TrackByPublicID retrieves an order by its tracking ID.
	TrackByPublicID(ctx context.Context, trackingID uuid.UUID) (*model.Order, error)

	// ListAll retrieves one page of every order, newest first.
	ListAll(ctx context.Context, page model.PageRequest) (*model.OrderPage, error)

	// ListForUser retrieves one page of a user's orders, newest first.
	ListForUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error)
}

// OrderStatusService moves orders through their fulfilment states.
type OrderStatusService interface {
	// UpdateStatus sets an order's status if the transition is allowed.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}
