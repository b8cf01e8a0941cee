package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Upsert inserts products or refreshes existing rows with the same ID.
	Upsert(ctx context.Context, products []model.Product) error
}

// GuestRepository persists guest checkout identities.
type GuestRepository interface {
	// Create inserts a guest within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, guest *model.GuestUser) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	// Returns model.ErrDuplicateOrder if the idempotency token is already taken.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ExistsByIdempotencyToken reports whether an order already uses token.
	ExistsByIdempotencyToken(ctx context.Context, token string) (bool, error)

	// GetByTrackingID retrieves an order with its buyer and items. Returns nil when absent.
	GetByTrackingID(ctx context.Context, trackingID uuid.UUID) (*model.Order, error)

	// List retrieves orders newest first, with buyers and items.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetStatusForUpdate locks the order row and returns its status.
	// Returns model.ErrOrderNotFound when absent.
	GetStatusForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (model.OrderStatus, error)

	// UpdateStatus sets the order's status within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error
}
