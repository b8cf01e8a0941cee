// Package idempotency rejects order submissions whose token is already used.
//
// Guards are advisory. Two racing submissions can both pass Check; the unique
// constraint on orders.idempotency_token decides which one commits.
package idempotency

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// Guard checks and records idempotency tokens.
type Guard interface {
	// Check returns model.ErrDuplicateOrder if token already belongs to an order.
	Check(ctx context.Context, token string) error

	// Remember records that token now belongs to orderID.
	Remember(ctx context.Context, token string, orderID uuid.UUID)
}

// TokenStore reports whether a committed order already carries a token.
type TokenStore interface {
	ExistsByIdempotencyToken(ctx context.Context, token string) (bool, error)
}

type storeGuard struct {
	store TokenStore
}

// NewStoreGuard creates a guard that queries the order store directly.
func NewStoreGuard(store TokenStore) Guard {
	return &storeGuard{store: store}
}

func (g *storeGuard) Check(ctx context.Context, token string) error {
	exists, err := g.store.ExistsByIdempotencyToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to check idempotency token: %w", err)
	}
	if exists {
		return model.ErrDuplicateOrder
	}
	return nil
}

// Remember is a no-op; the committed order row is the record.
func (g *storeGuard) Remember(context.Context, string, uuid.UUID) {}
